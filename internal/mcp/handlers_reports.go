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

type bucketHours struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

type dateHours struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type summaryReport struct {
	Period             string        `json:"period"`
	DateRange          string        `json:"date_range"`
	TotalHours         float64       `json:"total_hours"`
	TotalEntries       int           `json:"total_entries"`
	AverageHoursPerDay float64       `json:"average_hours_per_day"`
	HoursByProject     []bucketHours `json:"hours_by_project"`
	HoursByDate        []dateHours   `json:"hours_by_date"`
}

func (s *Server) handleTimeSummary(ctx context.Context, req *mcp.CallToolRequest, args timeSummaryArgs) (*mcp.CallToolResult, any, error) {
	period := args.Period
	if period == "" {
		period = "week"
	}

	anchor := s.now()
	if args.StartDate != "" {
		parsed, err := parseDate(args.StartDate)
		if err != nil {
			return nil, nil, err
		}
		anchor = parsed
	}

	start, end, err := periodWindow(period, anchor)
	if err != nil {
		return nil, nil, err
	}
	startDate := start.Format(dateLayout)
	endDate := end.Format(dateLayout)

	entries, err := s.api.AllTimeEntries(ctx, tick.EntryFilter{StartDate: startDate, EndDate: endDate})
	if err != nil {
		return nil, nil, err
	}
	entries = filterByDateRange(entries, startDate, endDate)

	// Every day of the window is reported, zero when nothing was logged.
	dates := windowDates(start, end)
	byDate := make(map[string]float64, len(dates))
	for _, d := range dates {
		byDate[d] = 0
	}
	byProject := make(map[string]float64)
	var total float64
	for _, e := range entries {
		total += e.Hours
		byProject[entryProjectName(e)] += e.Hours
		byDate[e.Date] += e.Hours
	}

	report := &summaryReport{
		Period:             period,
		DateRange:          fmt.Sprintf("%s to %s", startDate, endDate),
		TotalHours:         total,
		TotalEntries:       len(entries),
		AverageHoursPerDay: total / float64(len(dates)),
	}
	for name, hours := range byProject {
		report.HoursByProject = append(report.HoursByProject, bucketHours{Name: name, Hours: hours})
	}
	sort.SliceStable(report.HoursByProject, func(i, j int) bool {
		if report.HoursByProject[i].Hours != report.HoursByProject[j].Hours {
			return report.HoursByProject[i].Hours > report.HoursByProject[j].Hours
		}
		return report.HoursByProject[i].Name < report.HoursByProject[j].Name
	})
	for _, d := range dates {
		report.HoursByDate = append(report.HoursByDate, dateHours{Date: d, Hours: byDate[d]})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summary for %s %s: %.2f hours across %d entries (%.2f/day).\n",
		period, report.DateRange, total, report.TotalEntries, report.AverageHoursPerDay)
	for _, p := range report.HoursByProject {
		fmt.Fprintf(&b, "- %s: %.2f hours\n", p.Name, p.Hours)
	}

	return textResult(b.String()), report, nil
}

type memberRow struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Timezone      string  `json:"timezone,omitempty"`
	RecentHours   float64 `json:"recent_hours"`
	RecentEntries int     `json:"recent_entries"`
	Active        bool    `json:"is_active"`
}

type teamReport struct {
	WindowDays          int         `json:"window_days"`
	TotalUsers          int         `json:"total_users"`
	ActiveUsers         int         `json:"active_users"`
	TotalHours          float64     `json:"total_hours"`
	AverageHoursPerUser float64     `json:"average_hours_per_active_user"`
	Users               []memberRow `json:"users"`
}

func (s *Server) handleTeamOverview(ctx context.Context, req *mcp.CallToolRequest, args teamOverviewArgs) (*mcp.CallToolResult, any, error) {
	today := s.now()
	startDate := today.AddDate(0, 0, -s.teamWindowDays).Format(dateLayout)
	endDate := today.Format(dateLayout)

	g, gctx := errgroup.WithContext(ctx)
	var users []tick.User
	var entries []tick.TimeEntry
	g.Go(func() error {
		var err error
		users, err = s.api.Users(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.api.AllTimeEntries(gctx, tick.EntryFilter{StartDate: startDate, EndDate: endDate})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	type activity struct {
		hours   float64
		entries int
	}
	byUser := make(map[int64]activity)
	for _, e := range entries {
		id := e.UserID
		if id == 0 && e.User != nil {
			id = e.User.ID
		}
		if id == 0 {
			continue
		}
		a := byUser[id]
		a.hours += e.Hours
		a.entries++
		byUser[id] = a
	}

	report := &teamReport{
		WindowDays: s.teamWindowDays,
		TotalUsers: len(users),
	}
	for _, u := range users {
		a := byUser[u.ID]
		row := memberRow{
			ID:            u.ID,
			Name:          fullName(u),
			Email:         u.Email,
			Timezone:      u.Timezone,
			RecentHours:   a.hours,
			RecentEntries: a.entries,
			Active:        a.hours > 0,
		}
		if row.Active {
			report.ActiveUsers++
		}
		report.Users = append(report.Users, row)
	}
	for _, a := range byUser {
		report.TotalHours += a.hours
	}
	if report.ActiveUsers > 0 {
		report.AverageHoursPerUser = report.TotalHours / float64(report.ActiveUsers)
	}

	sort.SliceStable(report.Users, func(i, j int) bool {
		if report.Users[i].RecentHours != report.Users[j].RecentHours {
			return report.Users[i].RecentHours > report.Users[j].RecentHours
		}
		return report.Users[i].Name < report.Users[j].Name
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Team activity, trailing %d days (%s to %s): %d of %d members active, %.2f hours total.\n",
		report.WindowDays, startDate, endDate, report.ActiveUsers, report.TotalUsers, report.TotalHours)
	for _, row := range report.Users {
		fmt.Fprintf(&b, "- %s: %.2f hours over %d entries\n", row.Name, row.RecentHours, row.RecentEntries)
	}

	return textResult(b.String()), report, nil
}
