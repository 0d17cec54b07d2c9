// mocktick serves a generated fake Tick account over HTTP. Point the MCP
// server at it with TICK_BASE_URL=http://localhost:8474/api/v2 to develop
// without real credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"tick-mcp/cmd/mocktick/engine"
	"tick-mcp/internal/tick"
)

func main() {
	addr := flag.String("addr", "localhost:8474", "Listen address")
	projects := flag.Int("projects", 6, "Number of projects to generate")
	users := flag.Int("users", 4, "Number of users to generate")
	days := flag.Int("days", 30, "Trailing days of generated entries")
	seed := flag.Int64("seed", 42, "Random seed for deterministic data")
	pageSize := flag.Int("page-size", 100, "List endpoint page size")
	flag.Parse()

	ds := engine.Generate(engine.GeneratorConfig{
		Projects: *projects,
		Users:    *users,
		Days:     *days,
		Seed:     *seed,
		Now:      time.Now(),
	})

	srv := &server{ds: ds, pageSize: *pageSize}

	fmt.Printf("mocktick serving %d projects, %d users, %d entries on http://%s/api/v2\n",
		len(ds.Projects), len(ds.Users), len(ds.Entries), *addr)

	if err := http.ListenAndServe(*addr, srv.routes()); err != nil {
		fmt.Fprintf(os.Stderr, "mocktick failed: %v\n", err)
		os.Exit(1)
	}
}

type server struct {
	ds       *engine.Dataset
	pageSize int
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/projects.json", s.listProjects)
	mux.HandleFunc("GET /api/v2/projects/{id}/tasks.json", s.listTasks)
	mux.HandleFunc("GET /api/v2/projects/{id}/entries.json", s.listProjectEntries)
	mux.HandleFunc("GET /api/v2/clients.json", s.listClients)
	mux.HandleFunc("GET /api/v2/users.json", s.listUsers)
	mux.HandleFunc("GET /api/v2/entries.json", s.listEntries)
	mux.HandleFunc("POST /api/v2/entries.json", s.createEntry)
	mux.HandleFunc("PUT /api/v2/entries/{id}.json", s.updateEntry)
	mux.HandleFunc("DELETE /api/v2/entries/{id}.json", s.deleteEntry)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// page slices a list the way Tick does: 1-based page numbers, short or
// empty final page.
func page[T any](items []T, r *http.Request, size int) []T {
	p := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			p = parsed
		}
	}
	start := (p - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func entryFilter(r *http.Request, projectID int64) tick.EntryFilter {
	q := r.URL.Query()
	return tick.EntryFilter{
		ProjectID: projectID,
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
}

func (s *server) listProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, page(s.ds.Projects, r, s.pageSize))
}

func (s *server) listTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	tasks := s.ds.Tasks[id]
	if tasks == nil {
		tasks = []tick.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *server) listClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ds.Clients)
}

func (s *server) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ds.Users)
}

func (s *server) listEntries(w http.ResponseWriter, r *http.Request) {
	entries := s.ds.ListEntries(entryFilter(r, 0))
	writeJSON(w, http.StatusOK, page(entries, r, s.pageSize))
}

func (s *server) listProjectEntries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	entries := s.ds.ListEntries(entryFilter(r, id))
	writeJSON(w, http.StatusOK, page(entries, r, s.pageSize))
}

func (s *server) createEntry(w http.ResponseWriter, r *http.Request) {
	var entry tick.NewEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	writeJSON(w, http.StatusCreated, s.ds.CreateEntry(entry))
}

func (s *server) updateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var changes tick.EntryChanges
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	updated, found := s.ds.UpdateEntry(id, changes)
	if !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if !s.ds.DeleteEntry(id) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
