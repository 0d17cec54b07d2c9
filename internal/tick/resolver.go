package tick

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Resolver maps free-text name fragments to remote entities. Matching is
// a case-insensitive substring check and the first match in list order
// wins; no ranking or disambiguation is attempted. Every resolution
// re-fetches the relevant list, so identifiers are never reused across
// tool invocations.
type Resolver struct {
	api Client
}

// NewResolver creates a Resolver backed by the given client.
func NewResolver(api Client) *Resolver {
	return &Resolver{api: api}
}

// ResolveProject finds the first project whose name contains fragment.
// Returns an error wrapping ErrNoMatch when nothing matches.
func (r *Resolver) ResolveProject(ctx context.Context, fragment string) (*Project, error) {
	projects, err := r.api.AllProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if containsFold(projects[i].Name, fragment) {
			log.Debug().Str("fragment", fragment).Str("project", projects[i].Name).Msg("Resolved project")
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", fragment, ErrNoMatch)
}

// ResolveTask finds the first task in the given project whose name
// contains fragment.
func (r *Resolver) ResolveTask(ctx context.Context, projectID int64, fragment string) (*Task, error) {
	tasks, err := r.api.Tasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if containsFold(tasks[i].Name, fragment) {
			log.Debug().Str("fragment", fragment).Str("task", tasks[i].Name).Msg("Resolved task")
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %q: %w", fragment, ErrNoMatch)
}

// ResolveClient finds the first client whose name contains fragment.
func (r *Resolver) ResolveClient(ctx context.Context, fragment string) (*Customer, error) {
	clients, err := r.api.Clients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if containsFold(clients[i].Name, fragment) {
			return &clients[i], nil
		}
	}
	return nil, fmt.Errorf("client %q: %w", fragment, ErrNoMatch)
}

func containsFold(name, fragment string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(fragment))
}
