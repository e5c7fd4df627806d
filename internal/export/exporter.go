package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"asana2csv/internal/service"
)

// ErrWorkspaceNotFound means no accessible workspace has the requested name.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// Exporter collects the rows of every task in a workspace.
type Exporter struct {
	svc      service.Service
	pageSize int
	progress io.Writer
	logger   *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithPageSize sets the task page size.
func WithPageSize(n int) Option {
	return func(e *Exporter) { e.pageSize = n }
}

// WithProgress sets where project names are printed as they are processed.
func WithProgress(w io.Writer) Option {
	return func(e *Exporter) { e.progress = w }
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// NewExporter creates an Exporter over svc.
func NewExporter(svc service.Service, opts ...Option) *Exporter {
	e := &Exporter{
		svc:      svc,
		pageSize: 100,
		progress: io.Discard,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export resolves workspaceName (exact, case-sensitive) and returns the rows
// of all its projects' tasks, in project then task order.
func (e *Exporter) Export(ctx context.Context, workspaceName string) ([]Row, error) {
	me, err := e.svc.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workspaces: %w", err)
	}

	workspaces := WorkspaceNames(me.Workspaces)

	ws, ok := FindWorkspace(me.Workspaces, workspaceName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, workspaceName)
	}
	e.logger.Debug("resolved workspace", "workspace", ws.Name, "gid", ws.ID)

	projects, err := e.svc.ListProjects(ctx, ws.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	e.logger.Debug("listed projects", "count", len(projects))

	var rows []Row
	for _, project := range projects {
		fmt.Fprintln(e.progress, project.Name)

		projectRows, err := CollectProjectTasks(ctx, e.svc, project, workspaces, e.pageSize)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("collected project", "project", project.Name, "gid", project.ID, "tasks", len(projectRows))
		rows = append(rows, projectRows...)
	}

	e.logger.Debug("export complete", "projects", len(projects), "tasks", len(rows))
	return rows, nil
}

// WorkspaceNames maps workspace id to name.
func WorkspaceNames(workspaces []service.Workspace) map[string]string {
	m := make(map[string]string, len(workspaces))
	for _, ws := range workspaces {
		m[ws.ID] = ws.Name
	}
	return m
}

// FindWorkspace returns the first workspace whose name equals name exactly.
func FindWorkspace(workspaces []service.Workspace, name string) (service.Workspace, bool) {
	for _, ws := range workspaces {
		if ws.Name == name {
			return ws, true
		}
	}
	return service.Workspace{}, false
}
