package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tick-mcp/internal/tick"
)

// entriesReport is the structured result shared by the entry listing and
// sheets export tools.
type entriesReport struct {
	Project      string             `json:"project"`
	ProjectID    int64              `json:"project_id,omitempty"`
	DateRange    string             `json:"date_range"`
	TotalEntries int                `json:"total_entries"`
	TotalHours   float64            `json:"total_hours"`
	HoursByUser  map[string]float64 `json:"hours_by_user"`
	Entries      []tick.TimeEntry   `json:"entries"`
}

// buildEntriesReport validates the arguments, resolves the optional
// project and aggregates all matching entry pages. Validation failures
// return before any network call.
func (s *Server) buildEntriesReport(ctx context.Context, project, startDate, endDate string) (*entriesReport, error) {
	if err := validateOptionalDate(startDate); err != nil {
		return nil, err
	}
	if err := validateOptionalDate(endDate); err != nil {
		return nil, err
	}

	filter := tick.EntryFilter{StartDate: startDate, EndDate: endDate}
	report := &entriesReport{
		Project:   "All projects",
		DateRange: fmt.Sprintf("%s to %s", orDefault(startDate, "beginning"), orDefault(endDate, "now")),
	}

	if project != "" {
		p, err := s.resolver.ResolveProject(ctx, project)
		if err != nil {
			return nil, guidedResolveErr(err, "list_projects")
		}
		filter.ProjectID = p.ID
		report.Project = p.Name
		report.ProjectID = p.ID
	}

	entries, err := s.api.AllTimeEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	// The date params go upstream too, but the range is enforced here so
	// a remote that ignores them still yields a correct result.
	entries = filterByDateRange(entries, startDate, endDate)

	report.Entries = entries
	report.TotalEntries = len(entries)
	report.HoursByUser = make(map[string]float64)
	for _, e := range entries {
		report.TotalHours += e.Hours
		report.HoursByUser[entryUserName(e)] += e.Hours
	}
	return report, nil
}

func (s *Server) handleGetTimeEntries(ctx context.Context, req *mcp.CallToolRequest, args getTimeEntriesArgs) (*mcp.CallToolResult, any, error) {
	report, err := s.buildEntriesReport(ctx, args.Project, args.StartDate, args.EndDate)
	if err != nil {
		return nil, nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d time entries (%.2f hours) for %s, %s.\n",
		report.TotalEntries, report.TotalHours, report.Project, report.DateRange)
	if len(report.HoursByUser) > 0 {
		b.WriteString("Hours by user:\n")
		for user, hours := range report.HoursByUser {
			fmt.Fprintf(&b, "- %s: %.2f\n", user, hours)
		}
	}

	return textResult(b.String()), report, nil
}

func (s *Server) handleCreateTimeEntry(ctx context.Context, req *mcp.CallToolRequest, args createTimeEntryArgs) (*mcp.CallToolResult, any, error) {
	if args.Hours <= 0 {
		return nil, nil, fmt.Errorf("hours must be a positive number, got %v", args.Hours)
	}
	if _, err := parseDate(args.Date); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(args.Project) == "" || strings.TrimSpace(args.Task) == "" {
		return nil, nil, fmt.Errorf("project and task are required")
	}

	project, err := s.resolver.ResolveProject(ctx, args.Project)
	if err != nil {
		return nil, nil, guidedResolveErr(err, "list_projects")
	}
	task, err := s.resolver.ResolveTask(ctx, project.ID, args.Task)
	if err != nil {
		return nil, nil, guidedResolveErr(err, "get_project_tasks")
	}

	created, err := s.api.CreateTimeEntry(ctx, tick.NewEntry{
		ProjectID: project.ID,
		TaskID:    task.ID,
		Hours:     args.Hours,
		Date:      args.Date,
		Notes:     args.Notes,
	})
	if err != nil {
		return nil, nil, err
	}

	result := map[string]any{
		"entry_id":   created.ID,
		"project":    project.Name,
		"project_id": project.ID,
		"task":       task.Name,
		"task_id":    task.ID,
		"hours":      args.Hours,
		"date":       args.Date,
		"notes":      args.Notes,
	}
	text := fmt.Sprintf("Created %.2f hour entry for %s - %s on %s (entry ID: %d)",
		args.Hours, project.Name, task.Name, args.Date, created.ID)
	return textResult(text), result, nil
}

func (s *Server) handleUpdateTimeEntry(ctx context.Context, req *mcp.CallToolRequest, args updateTimeEntryArgs) (*mcp.CallToolResult, any, error) {
	if args.Hours == nil && args.Notes == nil {
		return nil, nil, fmt.Errorf("must provide either hours or notes to update")
	}
	if args.Hours != nil && *args.Hours <= 0 {
		return nil, nil, fmt.Errorf("hours must be a positive number, got %v", *args.Hours)
	}

	updated, err := s.api.UpdateTimeEntry(ctx, args.EntryID, tick.EntryChanges{
		Hours: args.Hours,
		Notes: args.Notes,
	})
	if err != nil {
		return nil, nil, entryNotFoundErr(err, args.EntryID)
	}

	result := map[string]any{"entry_id": args.EntryID}
	if updated != nil && updated.ID != 0 {
		result["entry"] = updated
	} else {
		// Remote acknowledged without echoing the entry; report the
		// requested changes instead.
		if args.Hours != nil {
			result["hours"] = *args.Hours
		}
		if args.Notes != nil {
			result["notes"] = *args.Notes
		}
	}

	return textResult(fmt.Sprintf("Updated time entry %d", args.EntryID)), result, nil
}

func (s *Server) handleDeleteTimeEntry(ctx context.Context, req *mcp.CallToolRequest, args deleteTimeEntryArgs) (*mcp.CallToolResult, any, error) {
	if err := s.api.DeleteTimeEntry(ctx, args.EntryID); err != nil {
		return nil, nil, entryNotFoundErr(err, args.EntryID)
	}
	return textResult(fmt.Sprintf("Deleted time entry %d", args.EntryID)),
		map[string]any{"entry_id": args.EntryID, "deleted": true}, nil
}

// sheetsExport is the structured result of get_time_entries_for_sheets.
type sheetsExport struct {
	Headers   []string `json:"headers"`
	SheetData [][]any  `json:"sheet_data"`
	TotalRows int      `json:"total_rows"`
	Summary   struct {
		Project      string  `json:"project"`
		DateRange    string  `json:"date_range"`
		TotalEntries int     `json:"total_entries"`
		TotalHours   float64 `json:"total_hours"`
	} `json:"summary"`
}

func (s *Server) handleSheetsExport(ctx context.Context, req *mcp.CallToolRequest, args sheetsExportArgs) (*mcp.CallToolResult, any, error) {
	report, err := s.buildEntriesReport(ctx, args.Project, args.StartDate, args.EndDate)
	if err != nil {
		return nil, nil, err
	}
	if args.RawEntries {
		return textResult(fmt.Sprintf("Found %d time entries (%.2f hours) for %s, %s.",
			report.TotalEntries, report.TotalHours, report.Project, report.DateRange)), report, nil
	}

	headers := []string{"Date", "Project", "Task", "User", "Hours", "Notes", "Client"}
	rows := [][]any{}
	headerRow := make([]any, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	rows = append(rows, headerRow)

	for _, e := range report.Entries {
		client := ""
		if e.Project != nil && e.Project.Client != nil {
			client = e.Project.Client.Name
		}
		user := ""
		if e.User != nil {
			user = fullName(*e.User)
		}
		rows = append(rows, []any{e.Date, entryProjectName(e), entryTaskName(e), user, e.Hours, e.Notes, client})
	}

	export := &sheetsExport{
		Headers:   headers,
		SheetData: rows,
		TotalRows: len(rows),
	}
	export.Summary.Project = report.Project
	export.Summary.DateRange = report.DateRange
	export.Summary.TotalEntries = report.TotalEntries
	export.Summary.TotalHours = report.TotalHours

	text := fmt.Sprintf("Prepared %d sheet rows (header + %d entries, %.2f hours) for %s.",
		export.TotalRows, report.TotalEntries, report.TotalHours, report.Project)
	return textResult(text), export, nil
}
