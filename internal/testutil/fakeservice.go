// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"

	"asana2csv/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	user     service.User
	projects map[string][]service.Project // workspaceID -> projects
	tasks    map[string][]service.Task    // projectID -> tasks

	// PageSize is the page size used when a query sets no limit.
	PageSize int

	// Calls counts calls per method name.
	Calls map[string]int

	// TaskQueries records every ListProjectTasks query, in order.
	TaskQueries []service.TaskQuery

	// Error injection for testing
	MeErr               error
	ListProjectsErr     error
	ListProjectTasksErr map[string]error // projectID -> error
}

// NewFakeService creates a new FakeService with no workspaces.
func NewFakeService() *FakeService {
	return &FakeService{
		user:                service.User{ID: "me", Name: "Test User"},
		projects:            make(map[string][]service.Project),
		tasks:               make(map[string][]service.Task),
		PageSize:            100,
		Calls:               make(map[string]int),
		ListProjectTasksErr: make(map[string]error),
	}
}

// AddWorkspace adds a workspace visible to the user.
func (f *FakeService) AddWorkspace(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user.Workspaces = append(f.user.Workspaces, service.Workspace{ID: id, Name: name})
}

// AddProject adds a project to a workspace.
func (f *FakeService) AddProject(workspaceID, id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[workspaceID] = append(f.projects[workspaceID], service.Project{ID: id, Name: name})
}

// AddTask adds a task to a project. If the task has no workspace reference,
// it gets the project's workspace.
func (f *FakeService) AddTask(projectID string, task service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task.Workspace == nil {
		for wsID, projects := range f.projects {
			for _, p := range projects {
				if p.ID == projectID {
					task.Workspace = &service.Ref{ID: wsID}
				}
			}
		}
	}
	task.Projects = append(task.Projects, service.Ref{ID: projectID})
	f.tasks[projectID] = append(f.tasks[projectID], task)
}

// TotalCalls returns the number of calls across all methods.
func (f *FakeService) TotalCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, c := range f.Calls {
		n += c
	}
	return n
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[method]++
}

// Me implements service.Service.
func (f *FakeService) Me(ctx context.Context) (service.User, error) {
	f.record("Me")
	if f.MeErr != nil {
		return service.User{}, f.MeErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	user := f.user
	user.Workspaces = append([]service.Workspace(nil), f.user.Workspaces...)
	return user, nil
}

// ListProjects implements service.Service.
func (f *FakeService) ListProjects(ctx context.Context, workspaceID string) ([]service.Project, error) {
	f.record("ListProjects")
	if f.ListProjectsErr != nil {
		return nil, f.ListProjectsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Project(nil), f.projects[workspaceID]...), nil
}

// ListProjectTasks implements service.Service.
// Offsets are the decimal index of the first task of the page.
func (f *FakeService) ListProjectTasks(ctx context.Context, projectID string, q service.TaskQuery) (service.TaskPage, error) {
	f.record("ListProjectTasks")
	f.mu.Lock()
	f.TaskQueries = append(f.TaskQueries, q)
	f.mu.Unlock()

	if err, ok := f.ListProjectTasksErr[projectID]; ok && err != nil {
		return service.TaskPage{}, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[projectID]
	if !ok {
		return service.TaskPage{}, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = f.PageSize
	}

	start := 0
	if q.Offset != "" {
		n, err := strconv.Atoi(q.Offset)
		if err != nil {
			return service.TaskPage{}, service.ErrNotFound
		}
		start = n
	}
	if start >= len(tasks) {
		return service.TaskPage{}, nil
	}

	end := start + limit
	page := service.TaskPage{}
	if end < len(tasks) {
		page.NextOffset = strconv.Itoa(end)
	} else {
		end = len(tasks)
	}
	page.Tasks = append([]service.Task(nil), tasks[start:end]...)
	return page, nil
}

// Str returns a pointer to s, for optional task fields.
func Str(s string) *string {
	return &s
}

// Ref returns a reference to the resource with the given id.
func Ref(id string) *service.Ref {
	return &service.Ref{ID: id}
}
