package mcp

import (
	"context"
	"sync"
	"time"

	"tick-mcp/internal/tick"
)

// fakeAPI is a scripted tick.Client for handler tests. It counts every
// remote call so validation tests can assert that nothing went out.
type fakeAPI struct {
	mu sync.Mutex

	projects   []tick.Project
	tasks      map[int64][]tick.Task
	customers  []tick.Customer
	users      []tick.User
	entries    []tick.TimeEntry
	entryPages [][]tick.TimeEntry

	err       error
	createErr error
	updateErr error
	deleteErr error

	calls      int
	created    []tick.NewEntry
	updated    map[int64]tick.EntryChanges
	deleted    []int64
	lastFilter tick.EntryFilter
}

func (f *fakeAPI) record() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAPI) Projects(ctx context.Context, page int) ([]tick.Project, error) {
	f.record()
	return f.projects, f.err
}

func (f *fakeAPI) AllProjects(ctx context.Context) ([]tick.Project, error) {
	f.record()
	return f.projects, f.err
}

func (f *fakeAPI) Tasks(ctx context.Context, projectID int64) ([]tick.Task, error) {
	f.record()
	return f.tasks[projectID], f.err
}

func (f *fakeAPI) Clients(ctx context.Context) ([]tick.Customer, error) {
	f.record()
	return f.customers, f.err
}

func (f *fakeAPI) Users(ctx context.Context) ([]tick.User, error) {
	f.record()
	return f.users, f.err
}

func (f *fakeAPI) TimeEntries(ctx context.Context, filter tick.EntryFilter, page int) ([]tick.TimeEntry, error) {
	f.record()
	if f.entryPages != nil && page <= len(f.entryPages) {
		return f.entryPages[page-1], f.err
	}
	return nil, f.err
}

func (f *fakeAPI) AllTimeEntries(ctx context.Context, filter tick.EntryFilter) ([]tick.TimeEntry, error) {
	f.record()
	f.mu.Lock()
	f.lastFilter = filter
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.entryPages != nil {
		var all []tick.TimeEntry
		for _, page := range f.entryPages {
			all = append(all, page...)
		}
		return all, nil
	}
	var out []tick.TimeEntry
	for _, e := range f.entries {
		if filter.ProjectID > 0 && e.ProjectID != filter.ProjectID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeAPI) CreateTimeEntry(ctx context.Context, entry tick.NewEntry) (*tick.TimeEntry, error) {
	f.record()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, entry)
	return &tick.TimeEntry{
		ID:        9001,
		Date:      entry.Date,
		Hours:     entry.Hours,
		Notes:     entry.Notes,
		TaskID:    entry.TaskID,
		ProjectID: entry.ProjectID,
	}, nil
}

func (f *fakeAPI) UpdateTimeEntry(ctx context.Context, entryID int64, changes tick.EntryChanges) (*tick.TimeEntry, error) {
	f.record()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updated == nil {
		f.updated = make(map[int64]tick.EntryChanges)
	}
	f.updated[entryID] = changes
	return &tick.TimeEntry{ID: entryID}, nil
}

func (f *fakeAPI) DeleteTimeEntry(ctx context.Context, entryID int64) error {
	f.record()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, entryID)
	return nil
}

// testNow is the fixed clock used by handler tests: a Wednesday.
var testNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func newTestServer(api tick.Client) *Server {
	return &Server{
		api:            api,
		resolver:       tick.NewResolver(api),
		teamWindowDays: 7,
		now:            func() time.Time { return testNow },
	}
}
