package tick

import (
	"context"
	"time"
)

// Client is the interface for interacting with the Tick API.
type Client interface {
	Projects(ctx context.Context, page int) ([]Project, error)
	AllProjects(ctx context.Context) ([]Project, error)
	Tasks(ctx context.Context, projectID int64) ([]Task, error)
	Clients(ctx context.Context) ([]Customer, error)
	Users(ctx context.Context) ([]User, error)
	TimeEntries(ctx context.Context, filter EntryFilter, page int) ([]TimeEntry, error)
	AllTimeEntries(ctx context.Context, filter EntryFilter) ([]TimeEntry, error)
	CreateTimeEntry(ctx context.Context, entry NewEntry) (*TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entryID int64, changes EntryChanges) (*TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, entryID int64) error
}

// Config holds the authentication and connection settings for Tick.
type Config struct {
	// Token is the opaque API secret sent as "Token token=...".
	Token string

	// Subdomain identifies the Tickspot account.
	Subdomain string

	// BaseURL overrides the derived https://{subdomain}.tickspot.com/api/v2
	// endpoint. Used by tests and the mocktick development server.
	BaseURL string

	// Timeout applies per HTTP request.
	Timeout time.Duration
}

// NewClient creates a new Tick client based on the provided configuration.
func NewClient(cfg Config) Client {
	return newRESTClient(cfg)
}
