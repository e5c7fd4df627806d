package service

import (
	"context"
	"errors"
)

// Errors a backend classifies its failures with. Backends wrap them, so
// callers test with errors.Is.
var (
	// ErrUnauthorized means the access token was rejected.
	ErrUnauthorized = errors.New("token rejected")

	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited means the backend refused the request for rate limiting.
	ErrRateLimited = errors.New("rate limited")
)

// Service defines the queries the exporter runs against the backend.
// Commands never import the HTTP client directly.
type Service interface {
	// Me returns the authenticated user and the workspaces it can access.
	Me(ctx context.Context) (User, error)

	// ListProjects returns all projects of a workspace in API order.
	// The backend follows its own pagination.
	ListProjects(ctx context.Context, workspaceID string) ([]Project, error)

	// ListProjectTasks returns one page of a project's tasks.
	// Callers keep requesting with the returned NextOffset until it is empty.
	ListProjectTasks(ctx context.Context, projectID string, q TaskQuery) (TaskPage, error)
}
