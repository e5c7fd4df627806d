// Package service defines the backend-agnostic interface for export queries.
package service

// Ref is a compact reference to another remote resource.
type Ref struct {
	ID string `json:"gid"`
}

// Workspace represents a top-level container of projects.
type Workspace struct {
	ID   string `json:"gid"`
	Name string `json:"name"`
}

// User is the authenticated identity and the workspaces it can see.
type User struct {
	ID         string      `json:"gid"`
	Name       string      `json:"name"`
	Workspaces []Workspace `json:"workspaces"`
}

// Project represents a named collection of tasks within a workspace.
type Project struct {
	ID   string `json:"gid"`
	Name string `json:"name"`
}

// Task is a task record as returned by the backend.
// Optional fields are nil when the remote value is null or was not sent.
type Task struct {
	ID             string  `json:"gid"`
	Name           string  `json:"name"`
	DueOn          *string `json:"due_on"`
	CreatedAt      *string `json:"created_at"`
	ModifiedAt     *string `json:"modified_at"`
	CompletedAt    *string `json:"completed_at"`
	Completed      bool    `json:"completed"`
	Assignee       *Ref    `json:"assignee"`
	AssigneeStatus *string `json:"assignee_status"`
	Parent         *Ref    `json:"parent"`
	Notes          *string `json:"notes"`
	Workspace      *Ref    `json:"workspace"`
	Projects       []Ref   `json:"projects"`
}

// TaskQuery selects one page of a project's tasks.
type TaskQuery struct {
	// Fields is the field projection sent to the backend.
	Fields []string

	// Limit is the page size.
	Limit int

	// Offset is the continuation token from the previous page; empty for the first page.
	Offset string
}

// TaskPage is one page of tasks.
type TaskPage struct {
	Tasks []Task

	// NextOffset is empty on the last page.
	NextOffset string
}
