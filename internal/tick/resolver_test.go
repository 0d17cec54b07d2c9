package tick

import (
	"context"
	"errors"
	"testing"
)

// listStub implements Client with fixed listings for resolver tests.
type listStub struct {
	Client

	projects    []Project
	tasks       []Task
	customers   []Customer
	projectsErr error
}

func (s *listStub) AllProjects(ctx context.Context) ([]Project, error) {
	return s.projects, s.projectsErr
}

func (s *listStub) Tasks(ctx context.Context, projectID int64) ([]Task, error) {
	return s.tasks, nil
}

func (s *listStub) Clients(ctx context.Context) ([]Customer, error) {
	return s.customers, nil
}

func TestResolveProject(t *testing.T) {
	stub := &listStub{projects: []Project{
		{ID: 1, Name: "Marketing"},
		{ID: 2, Name: "Market Research"},
		{ID: 3, Name: "Platform"},
	}}
	r := NewResolver(stub)

	tests := []struct {
		fragment string
		wantID   int64
		wantErr  bool
	}{
		{"market", 1, false},   // first match in list order wins
		{"MARKET", 1, false},   // case insensitive
		{"research", 2, false}, // substring anywhere in the name
		{"plat", 3, false},
		{"payroll", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			p, err := r.ResolveProject(context.Background(), tt.fragment)
			if tt.wantErr {
				if !errors.Is(err, ErrNoMatch) {
					t.Fatalf("err = %v, want ErrNoMatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveProject(%q): %v", tt.fragment, err)
			}
			if p.ID != tt.wantID {
				t.Errorf("ResolveProject(%q) = %d, want %d", tt.fragment, p.ID, tt.wantID)
			}
		})
	}
}

func TestResolveProject_FetchFailureIsNotNoMatch(t *testing.T) {
	fetchErr := &APIError{StatusCode: 500}
	r := NewResolver(&listStub{projectsErr: fetchErr})

	_, err := r.ResolveProject(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNoMatch) {
		t.Error("fetch failure must not be reported as a missing name")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Errorf("err = %v, want the propagated APIError", err)
	}
}

func TestResolveTask(t *testing.T) {
	stub := &listStub{tasks: []Task{
		{ID: 10, Name: "Development"},
		{ID: 11, Name: "Design"},
	}}
	r := NewResolver(stub)

	task, err := r.ResolveTask(context.Background(), 1, "dev")
	if err != nil {
		t.Fatalf("ResolveTask: %v", err)
	}
	if task.ID != 10 {
		t.Errorf("task ID = %d, want 10", task.ID)
	}

	if _, err := r.ResolveTask(context.Background(), 1, "deploy"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
}

func TestResolveClient(t *testing.T) {
	stub := &listStub{customers: []Customer{
		{ID: 100, Name: "Acme Corp"},
	}}
	r := NewResolver(stub)

	c, err := r.ResolveClient(context.Background(), "acme")
	if err != nil {
		t.Fatalf("ResolveClient: %v", err)
	}
	if c.ID != 100 {
		t.Errorf("client ID = %d, want 100", c.ID)
	}
}
