package tick

// Project is a Tick project as returned by the projects list endpoint.
// Budget and Hours are expressed in hours; Budget is null for unbudgeted
// projects and decodes to zero.
type Project struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Budget   float64   `json:"budget"`
	Hours    float64   `json:"hours"`
	ClientID int64     `json:"client_id"`
	Client   *Customer `json:"client,omitempty"`
	Owner    *User     `json:"owner,omitempty"`
	Closed   bool      `json:"closed"`
}

// Task is a Tick task, always scoped to a project.
type Task struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ProjectID int64   `json:"project_id"`
	Budget    float64 `json:"budget"`
	SumHours  float64 `json:"sum_hours"`
	Billable  bool    `json:"billable"`
	Closed    bool    `json:"closed"`
}

// Customer is a Tick client. The API resource is named "clients"; the Go
// type is named Customer to avoid clashing with the Client interface.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Archive bool   `json:"archive"`
}

// User is a Tick account member.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Timezone  string `json:"timezone"`
}

// TimeEntry is a logged block of hours. The nested Project, Task and User
// objects are present only when the remote expands them; the *_id fields
// are always set.
type TimeEntry struct {
	ID        int64    `json:"id"`
	Date      string   `json:"date"`
	Hours     float64  `json:"hours"`
	Notes     string   `json:"notes"`
	TaskID    int64    `json:"task_id"`
	UserID    int64    `json:"user_id"`
	ProjectID int64    `json:"project_id"`
	Task      *Task    `json:"task,omitempty"`
	Project   *Project `json:"project,omitempty"`
	User      *User    `json:"user,omitempty"`
}

// NewEntry is the payload for creating a time entry.
type NewEntry struct {
	ProjectID int64   `json:"project_id"`
	TaskID    int64   `json:"task_id"`
	Hours     float64 `json:"hours"`
	Date      string  `json:"date"`
	Notes     string  `json:"notes"`
}

// EntryChanges is a partial update for an existing entry. Nil fields are
// left untouched remotely.
type EntryChanges struct {
	Hours *float64 `json:"hours,omitempty"`
	Notes *string  `json:"notes,omitempty"`
}

// EntryFilter narrows a time entry listing. A zero ProjectID means all
// projects; empty dates leave the remote default window in place.
type EntryFilter struct {
	ProjectID int64
	StartDate string
	EndDate   string
}
