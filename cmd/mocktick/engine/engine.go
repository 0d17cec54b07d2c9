// Package engine generates and serves a deterministic fake Tick account
// so the MCP server can be exercised without real credentials.
package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"tick-mcp/internal/tick"
)

// GeneratorConfig controls the shape of the generated account.
type GeneratorConfig struct {
	Projects int
	Users    int
	Days     int
	Seed     int64
	Now      time.Time
}

// Dataset is an in-memory Tick account. Entry writes are mutexed so the
// mock can serve concurrent requests.
type Dataset struct {
	mu sync.RWMutex

	Clients  []tick.Customer
	Projects []tick.Project
	Tasks    map[int64][]tick.Task
	Users    []tick.User
	Entries  []tick.TimeEntry

	nextEntryID int64
}

var (
	clientNames  = []string{"Acme Corp", "Globex", "Initech", "Umbrella", "Stark Industries", "Wayne Enterprises"}
	projectNouns = []string{"Website Relaunch", "Mobile App", "Data Migration", "Marketing Campaign", "Support Retainer", "API Platform", "Internal Tooling", "Brand Refresh"}
	taskNames    = []string{"Development", "Design", "Project Management", "QA", "Meetings", "Research"}
	firstNames   = []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"}
	lastNames    = []string{"Smith", "Jones", "Nguyen", "Garcia", "Miller", "Chen", "Patel", "Kim"}
)

// Generate builds a dataset from the config. The same seed always yields
// the same account.
func Generate(cfg GeneratorConfig) *Dataset {
	if cfg.Projects <= 0 {
		cfg.Projects = 6
	}
	if cfg.Users <= 0 {
		cfg.Users = 4
	}
	if cfg.Days <= 0 {
		cfg.Days = 30
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	ds := &Dataset{
		Tasks:       make(map[int64][]tick.Task),
		nextEntryID: 1000,
	}

	for i, name := range clientNames {
		if i >= (cfg.Projects+1)/2 {
			break
		}
		ds.Clients = append(ds.Clients, tick.Customer{ID: int64(100 + i), Name: name})
	}

	for i := 0; i < cfg.Users; i++ {
		first := firstNames[i%len(firstNames)]
		last := lastNames[i%len(lastNames)]
		ds.Users = append(ds.Users, tick.User{
			ID:        int64(500 + i),
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s@example.com", first, last),
			Timezone:  "UTC",
		})
	}

	taskID := int64(5000)
	for i := 0; i < cfg.Projects; i++ {
		client := &ds.Clients[i%len(ds.Clients)]
		project := tick.Project{
			ID:       int64(1 + i),
			Name:     projectNouns[i%len(projectNouns)],
			Budget:   float64(40 + rng.Intn(200)),
			ClientID: client.ID,
			Client:   client,
		}
		for j := 0; j < 2+rng.Intn(3); j++ {
			taskID++
			ds.Tasks[project.ID] = append(ds.Tasks[project.ID], tick.Task{
				ID:        taskID,
				Name:      taskNames[j%len(taskNames)],
				ProjectID: project.ID,
				Budget:    float64(10 + rng.Intn(40)),
				Billable:  j%2 == 0,
			})
		}
		ds.Projects = append(ds.Projects, project)
	}

	// Scatter entries across the trailing window.
	for day := 0; day < cfg.Days; day++ {
		date := cfg.Now.AddDate(0, 0, -day).Format("2006-01-02")
		for n := 0; n < 1+rng.Intn(4); n++ {
			project := &ds.Projects[rng.Intn(len(ds.Projects))]
			tasks := ds.Tasks[project.ID]
			task := tasks[rng.Intn(len(tasks))]
			user := ds.Users[rng.Intn(len(ds.Users))]
			hours := float64(1+rng.Intn(12)) * 0.5

			ds.nextEntryID++
			ds.Entries = append(ds.Entries, tick.TimeEntry{
				ID:        ds.nextEntryID,
				Date:      date,
				Hours:     hours,
				Notes:     fmt.Sprintf("Work on %s", task.Name),
				TaskID:    task.ID,
				UserID:    user.ID,
				ProjectID: project.ID,
				Task:      &task,
				Project:   project,
				User:      &user,
			})
			project.Hours += hours
		}
	}

	return ds
}

// ListEntries returns the entries matching the filter in insertion order.
func (d *Dataset) ListEntries(filter tick.EntryFilter) []tick.TimeEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []tick.TimeEntry
	for _, e := range d.Entries {
		if filter.ProjectID > 0 && e.ProjectID != filter.ProjectID {
			continue
		}
		if filter.StartDate != "" && e.Date < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && e.Date > filter.EndDate {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CreateEntry appends a new entry and returns it with its assigned ID.
func (d *Dataset) CreateEntry(entry tick.NewEntry) tick.TimeEntry {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextEntryID++
	created := tick.TimeEntry{
		ID:        d.nextEntryID,
		Date:      entry.Date,
		Hours:     entry.Hours,
		Notes:     entry.Notes,
		TaskID:    entry.TaskID,
		ProjectID: entry.ProjectID,
	}
	d.Entries = append(d.Entries, created)
	return created
}

// UpdateEntry applies changes to an existing entry. The bool reports
// whether the entry exists.
func (d *Dataset) UpdateEntry(entryID int64, changes tick.EntryChanges) (tick.TimeEntry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.Entries {
		if d.Entries[i].ID != entryID {
			continue
		}
		if changes.Hours != nil {
			d.Entries[i].Hours = *changes.Hours
		}
		if changes.Notes != nil {
			d.Entries[i].Notes = *changes.Notes
		}
		return d.Entries[i], true
	}
	return tick.TimeEntry{}, false
}

// DeleteEntry removes an entry. The bool reports whether it existed.
func (d *Dataset) DeleteEntry(entryID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.Entries {
		if d.Entries[i].ID == entryID {
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			return true
		}
	}
	return false
}
