package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"tick-mcp/internal/tick"
)

type projectRow struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Client          string  `json:"client"`
	Owner           string  `json:"owner,omitempty"`
	Budget          float64 `json:"budget"`
	HoursUsed       float64 `json:"hours_used"`
	BudgetRemaining float64 `json:"budget_remaining"`
	Closed          bool    `json:"is_closed"`
}

type projectsReport struct {
	TotalProjects    int          `json:"total_projects"`
	TotalBudget      float64      `json:"total_budget"`
	TotalHoursLogged float64      `json:"total_hours_logged"`
	Projects         []projectRow `json:"projects"`
}

func (s *Server) handleListProjects(ctx context.Context, req *mcp.CallToolRequest, args listProjectsArgs) (*mcp.CallToolResult, any, error) {
	projects, err := s.api.AllProjects(ctx)
	if err != nil {
		return nil, nil, err
	}

	report := &projectsReport{TotalProjects: len(projects)}
	for _, p := range projects {
		clientName := "No client"
		if p.Client != nil {
			clientName = p.Client.Name
		}
		owner := ""
		if p.Owner != nil {
			owner = p.Owner.FirstName
		}
		report.TotalBudget += p.Budget
		report.TotalHoursLogged += p.Hours
		report.Projects = append(report.Projects, projectRow{
			ID:              p.ID,
			Name:            p.Name,
			Client:          clientName,
			Owner:           owner,
			Budget:          p.Budget,
			HoursUsed:       p.Hours,
			BudgetRemaining: p.Budget - p.Hours,
			Closed:          p.Closed,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d projects (%.1f budgeted hours, %.2f logged):\n",
		report.TotalProjects, report.TotalBudget, report.TotalHoursLogged)
	for _, row := range report.Projects {
		status := ""
		if row.Closed {
			status = " [closed]"
		}
		fmt.Fprintf(&b, "- %s (%s): %.2f of %.1f hours%s\n",
			row.Name, row.Client, row.HoursUsed, row.Budget, status)
	}

	return textResult(b.String()), report, nil
}

type taskRow struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Budget    float64 `json:"budget"`
	HoursUsed float64 `json:"hours_used"`
	Billable  bool    `json:"billable"`
	Closed    bool    `json:"is_closed"`
}

type tasksReport struct {
	Project    string    `json:"project"`
	ProjectID  int64     `json:"project_id"`
	TotalTasks int       `json:"total_tasks"`
	Tasks      []taskRow `json:"tasks"`
}

func (s *Server) handleGetProjectTasks(ctx context.Context, req *mcp.CallToolRequest, args getProjectTasksArgs) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Project) == "" {
		return nil, nil, fmt.Errorf("project is required")
	}

	project, err := s.resolver.ResolveProject(ctx, args.Project)
	if err != nil {
		return nil, nil, guidedResolveErr(err, "list_projects")
	}
	tasks, err := s.api.Tasks(ctx, project.ID)
	if err != nil {
		return nil, nil, err
	}

	report := &tasksReport{
		Project:    project.Name,
		ProjectID:  project.ID,
		TotalTasks: len(tasks),
	}
	for _, t := range tasks {
		report.Tasks = append(report.Tasks, taskRow{
			ID:        t.ID,
			Name:      t.Name,
			Budget:    t.Budget,
			HoursUsed: t.SumHours,
			Billable:  t.Billable,
			Closed:    t.Closed,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d tasks in %s:\n", report.TotalTasks, project.Name)
	for _, row := range report.Tasks {
		fmt.Fprintf(&b, "- %s (ID %d): %.2f hours logged\n", row.Name, row.ID, row.HoursUsed)
	}

	return textResult(b.String()), report, nil
}

type clientRow struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	ProjectCount     int      `json:"project_count"`
	TotalBudget      float64  `json:"total_budget"`
	TotalHoursLogged float64  `json:"total_hours_logged"`
	Projects         []string `json:"projects"`
}

type clientsReport struct {
	TotalClients int         `json:"total_clients"`
	Clients      []clientRow `json:"clients"`
}

func (s *Server) handleListClients(ctx context.Context, req *mcp.CallToolRequest, args listClientsArgs) (*mcp.CallToolResult, any, error) {
	// The two listings are independent, so they are fetched concurrently.
	g, gctx := errgroup.WithContext(ctx)
	var clients []tick.Customer
	var projects []tick.Project
	g.Go(func() error {
		var err error
		clients, err = s.api.Clients(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.api.AllProjects(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	byClient := make(map[int64][]tick.Project)
	for _, p := range projects {
		id := p.ClientID
		if id == 0 && p.Client != nil {
			id = p.Client.ID
		}
		if id != 0 {
			byClient[id] = append(byClient[id], p)
		}
	}

	report := &clientsReport{TotalClients: len(clients)}
	for _, c := range clients {
		row := clientRow{ID: c.ID, Name: c.Name}
		for _, p := range byClient[c.ID] {
			row.ProjectCount++
			row.TotalBudget += p.Budget
			row.TotalHoursLogged += p.Hours
			row.Projects = append(row.Projects, p.Name)
		}
		report.Clients = append(report.Clients, row)
	}
	sort.SliceStable(report.Clients, func(i, j int) bool {
		return report.Clients[i].Name < report.Clients[j].Name
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d clients:\n", report.TotalClients)
	for _, row := range report.Clients {
		fmt.Fprintf(&b, "- %s: %d projects, %.2f hours logged\n", row.Name, row.ProjectCount, row.TotalHoursLogged)
	}

	return textResult(b.String()), report, nil
}
