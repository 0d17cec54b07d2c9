package mcp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tick-mcp/internal/tick"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", value)
	}
	return t, nil
}

// validateOptionalDate rejects malformed non-empty dates before any
// network call is issued.
func validateOptionalDate(value string) error {
	if value == "" {
		return nil
	}
	_, err := parseDate(value)
	return err
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// guidedResolveErr converts a failed name resolution into a user-facing
// message pointing at the matching listing tool. Fetch failures pass
// through untouched.
func guidedResolveErr(err error, listTool string) error {
	if errors.Is(err, tick.ErrNoMatch) {
		return fmt.Errorf("%w. Run %s to see the available names", err, listTool)
	}
	return err
}

// entryNotFoundErr distinguishes a missing entry from other remote
// failures.
func entryNotFoundErr(err error, entryID int64) error {
	if errors.Is(err, tick.ErrNotFound) {
		return fmt.Errorf("time entry %d not found", entryID)
	}
	return err
}

// filterByDateRange keeps entries within the inclusive range. Dates are
// ISO YYYY-MM-DD strings, so lexicographic comparison is correct.
func filterByDateRange(entries []tick.TimeEntry, start, end string) []tick.TimeEntry {
	if start == "" && end == "" {
		return entries
	}
	filtered := make([]tick.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if start != "" && e.Date < start {
			continue
		}
		if end != "" && e.Date > end {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func entryUserName(e tick.TimeEntry) string {
	if e.User != nil && e.User.FirstName != "" {
		return e.User.FirstName
	}
	return "Unknown"
}

func entryProjectName(e tick.TimeEntry) string {
	if e.Project != nil && e.Project.Name != "" {
		return e.Project.Name
	}
	return "Unknown"
}

func entryTaskName(e tick.TimeEntry) string {
	if e.Task != nil {
		return e.Task.Name
	}
	return ""
}

func fullName(u tick.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
