package tick

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// pageSize is the fixed page length of Tick list endpoints. A response
// shorter than this is the last page.
const pageSize = 100

// userAgent identifies this client to Tick, which requires a contact
// address in the User-Agent header.
const userAgent = "tick-mcp (tick-mcp@users.noreply.github.com)"

type restClient struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

func newRESTClient(cfg Config) *restClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.tickspot.com/api/v2", cfg.Subdomain)
	}
	return &restClient{
		cfg:     cfg,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// request issues one call and decodes the JSON response into out. A nil
// out discards the body (DELETE).
func (c *restClient) request(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Token token=%s", c.cfg.Token))
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("path", path).Msg("Tick API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Tick API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// Some write endpoints acknowledge with an empty 200 body.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode Tick response: %w", err)
	}
	return nil
}

func (c *restClient) statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &APIError{StatusCode: resp.StatusCode, Message: "authentication failed, check TICK_API_TOKEN and TICK_SUBDOMAIN"}
	case http.StatusNotFound:
		return &APIError{StatusCode: resp.StatusCode, Message: "resource does not exist"}
	case http.StatusTooManyRequests:
		msg := "rate limit exceeded"
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			msg = fmt.Sprintf("rate limit exceeded, retry after %s seconds", retryAfter)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	default:
		return &APIError{StatusCode: resp.StatusCode}
	}
}

func pageQuery(page int) url.Values {
	params := url.Values{}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	return params
}

func (c *restClient) Projects(ctx context.Context, page int) ([]Project, error) {
	var projects []Project
	if err := c.request(ctx, http.MethodGet, "/projects.json", pageQuery(page), nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *restClient) AllProjects(ctx context.Context) ([]Project, error) {
	var all []Project
	for page := 1; ; page++ {
		projects, err := c.Projects(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, projects...)
		if len(projects) < pageSize {
			break
		}
	}
	return all, nil
}

func (c *restClient) Tasks(ctx context.Context, projectID int64) ([]Task, error) {
	var tasks []Task
	path := fmt.Sprintf("/projects/%d/tasks.json", projectID)
	if err := c.request(ctx, http.MethodGet, path, nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *restClient) Clients(ctx context.Context) ([]Customer, error) {
	var clients []Customer
	if err := c.request(ctx, http.MethodGet, "/clients.json", nil, nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *restClient) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.request(ctx, http.MethodGet, "/users.json", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *restClient) TimeEntries(ctx context.Context, filter EntryFilter, page int) ([]TimeEntry, error) {
	path := "/entries.json"
	if filter.ProjectID > 0 {
		path = fmt.Sprintf("/projects/%d/entries.json", filter.ProjectID)
	}

	params := pageQuery(page)
	if filter.StartDate != "" {
		params.Set("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		params.Set("end_date", filter.EndDate)
	}

	var entries []TimeEntry
	if err := c.request(ctx, http.MethodGet, path, params, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *restClient) AllTimeEntries(ctx context.Context, filter EntryFilter) ([]TimeEntry, error) {
	var all []TimeEntry
	for page := 1; ; page++ {
		entries, err := c.TimeEntries(ctx, filter, page)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
		if len(entries) < pageSize {
			break
		}
	}
	return all, nil
}

func (c *restClient) CreateTimeEntry(ctx context.Context, entry NewEntry) (*TimeEntry, error) {
	var created TimeEntry
	if err := c.request(ctx, http.MethodPost, "/entries.json", nil, entry, &created); err != nil {
		return nil, err
	}
	log.Info().Int64("entryId", created.ID).Float64("hours", entry.Hours).Msg("Created time entry")
	return &created, nil
}

func (c *restClient) UpdateTimeEntry(ctx context.Context, entryID int64, changes EntryChanges) (*TimeEntry, error) {
	var updated TimeEntry
	path := fmt.Sprintf("/entries/%d.json", entryID)
	if err := c.request(ctx, http.MethodPut, path, nil, changes, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *restClient) DeleteTimeEntry(ctx context.Context, entryID int64) error {
	path := fmt.Sprintf("/entries/%d.json", entryID)
	return c.request(ctx, http.MethodDelete, path, nil, nil, nil)
}
