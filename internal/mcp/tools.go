package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

type getTimeEntriesArgs struct {
	Project   string `json:"project,omitempty" jsonschema:"Project name (optional, partial match, case insensitive)"`
	StartDate string `json:"start_date,omitempty" jsonschema:"Start date in YYYY-MM-DD format (optional)"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"End date in YYYY-MM-DD format (optional)"`
}

type createTimeEntryArgs struct {
	Project string  `json:"project" jsonschema:"Project name (partial match, case insensitive)"`
	Task    string  `json:"task" jsonschema:"Task name (partial match, case insensitive)"`
	Hours   float64 `json:"hours" jsonschema:"Number of hours, can be decimal (e.g. 2.5)"`
	Date    string  `json:"date" jsonschema:"Date in YYYY-MM-DD format"`
	Notes   string  `json:"notes,omitempty" jsonschema:"Optional notes for the time entry"`
}

type updateTimeEntryArgs struct {
	EntryID int64    `json:"entry_id" jsonschema:"ID of the time entry to update"`
	Hours   *float64 `json:"hours,omitempty" jsonschema:"New number of hours (optional)"`
	Notes   *string  `json:"notes,omitempty" jsonschema:"New notes (optional)"`
}

type deleteTimeEntryArgs struct {
	EntryID int64 `json:"entry_id" jsonschema:"ID of the time entry to delete"`
}

type listProjectsArgs struct{}

type getProjectTasksArgs struct {
	Project string `json:"project" jsonschema:"Project name (partial match, case insensitive)"`
}

type timeSummaryArgs struct {
	Period    string `json:"period,omitempty" jsonschema:"Period type: day, week or month (default: week)"`
	StartDate string `json:"start_date,omitempty" jsonschema:"Anchor date in YYYY-MM-DD format (optional, defaults to today)"`
}

type listClientsArgs struct{}

type teamOverviewArgs struct{}

type sheetsExportArgs struct {
	Project    string `json:"project,omitempty" jsonschema:"Project name (optional, partial match, case insensitive)"`
	StartDate  string `json:"start_date,omitempty" jsonschema:"Start date in YYYY-MM-DD format (optional)"`
	EndDate    string `json:"end_date,omitempty" jsonschema:"End date in YYYY-MM-DD format (optional)"`
	RawEntries bool   `json:"raw_entries,omitempty" jsonschema:"Return the raw entry report instead of sheet rows"`
}

// registerTools adds all Tick tools to the server.
func (s *Server) registerTools(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_time_entries",
		Description: "Get time entries, optionally filtered by project and an inclusive date range. Reports total hours and hours per user.",
		Annotations: readOnlyAnnotations(),
	}, s.handleGetTimeEntries)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_time_entry",
		Description: "Create a new time entry against a project task. Project and task are matched by name fragment.",
		Annotations: writeAnnotations(),
	}, s.handleCreateTimeEntry)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_time_entry",
		Description: "Update the hours and/or notes of an existing time entry by ID.",
		Annotations: writeAnnotations(),
	}, s.handleUpdateTimeEntry)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_time_entry",
		Description: "Delete a time entry by ID.",
		Annotations: destructiveAnnotations(),
	}, s.handleDeleteTimeEntry)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with client, budget and logged hours.",
		Annotations: readOnlyAnnotations(),
	}, s.handleListProjects)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_project_tasks",
		Description: "List the tasks of a project matched by name fragment.",
		Annotations: readOnlyAnnotations(),
	}, s.handleGetProjectTasks)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_time_summary_by_period",
		Description: "Summarize logged hours for a day, week (Monday-Sunday) or calendar month, grouped by project and by date.",
		Annotations: readOnlyAnnotations(),
		InputSchema: summarySchema(),
	}, s.handleTimeSummary)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_clients",
		Description: "List all clients with their project counts, budgets and logged hours.",
		Annotations: readOnlyAnnotations(),
	}, s.handleListClients)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_team_overview",
		Description: "Show recent activity per team member: hours and entry counts over the trailing window, sorted by hours.",
		Annotations: readOnlyAnnotations(),
	}, s.handleTeamOverview)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_time_entries_for_sheets",
		Description: "Get time entries as a 2D row array (header plus one row per entry) ready for spreadsheet import.",
		Annotations: readOnlyAnnotations(),
	}, s.handleSheetsExport)
}

// summarySchema restricts the period argument to the three windows the
// handler understands.
func summarySchema() *jsonschema.Schema {
	schema, err := jsonschema.For[timeSummaryArgs](nil)
	if err != nil {
		log.Warn().Err(err).Msg("Falling back to inferred summary schema")
		return nil
	}
	if period, ok := schema.Properties["period"]; ok {
		period.Enum = []any{"day", "week", "month"}
	}
	return schema
}
