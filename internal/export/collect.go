package export

import (
	"context"
	"errors"
	"fmt"

	"asana2csv/internal/service"
)

// ErrUnknownWorkspace means a task references a workspace that was not
// among the user's workspaces.
var ErrUnknownWorkspace = errors.New("task references unknown workspace")

// TaskFields is the field projection requested for every task.
var TaskFields = []string{
	"name", "projects", "workspace", "gid", "due_on", "created_at",
	"modified_at", "completed", "completed_at", "assignee",
	"assignee_status", "parent", "notes",
}

// CollectProjectTasks fetches every page of a project's tasks and
// normalizes them in API order. workspaces maps workspace id to name.
func CollectProjectTasks(ctx context.Context, svc service.Service, project service.Project, workspaces map[string]string, pageSize int) ([]Row, error) {
	var tasks []service.Task
	q := service.TaskQuery{
		Fields: TaskFields,
		Limit:  pageSize,
	}
	for {
		page, err := svc.ListProjectTasks(ctx, project.ID, q)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tasks of project %s: %w", project.Name, err)
		}
		tasks = append(tasks, page.Tasks...)
		if page.NextOffset == "" {
			break
		}
		q.Offset = page.NextOffset
	}

	rows := make([]Row, 0, len(tasks))
	for _, task := range tasks {
		wsID := refID(task.Workspace)
		wsName, ok := workspaces[wsID]
		if !ok {
			return nil, fmt.Errorf("%w: %q (task %s)", ErrUnknownWorkspace, wsID, task.ID)
		}
		rows = append(rows, NormalizeTask(task, project.Name, wsName))
	}
	return rows, nil
}
