package export_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asana2csv/internal/export"
	"asana2csv/internal/service"
	"asana2csv/internal/testutil"
)

func newAcme() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddWorkspace("ws1", "Acme")
	svc.AddWorkspace("ws2", "Personal")
	svc.AddProject("ws1", "p1", "Roadmap")
	svc.AddProject("ws1", "p2", "Support")
	svc.AddTask("p1", service.Task{ID: "t1", Name: "Plan Q3"})
	svc.AddTask("p2", service.Task{ID: "t2", Name: "Triage inbox"})
	return svc
}

func TestExport_TwoProjectsInOrder(t *testing.T) {
	svc := newAcme()
	var progress bytes.Buffer

	rows, err := export.NewExporter(svc, export.WithProgress(&progress)).Export(context.Background(), "Acme")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Plan Q3", rows[0][export.ColTask])
	assert.Equal(t, "Roadmap", rows[0][export.ColProject])
	assert.Equal(t, "Acme", rows[0][export.ColWorkspace])
	assert.Equal(t, "Triage inbox", rows[1][export.ColTask])
	assert.Equal(t, "Support", rows[1][export.ColProject])

	assert.Equal(t, "Roadmap\nSupport\n", progress.String())
}

func TestExport_WorkspaceNameIsCaseSensitive(t *testing.T) {
	svc := newAcme()

	rows, err := export.NewExporter(svc).Export(context.Background(), "acme")

	require.Error(t, err)
	assert.True(t, errors.Is(err, export.ErrWorkspaceNotFound))
	assert.Contains(t, err.Error(), "acme")
	assert.Nil(t, rows)
	assert.Equal(t, 0, svc.Calls["ListProjects"])
}

func TestExport_OnlyMatchedWorkspaceProjects(t *testing.T) {
	svc := newAcme()
	svc.AddProject("ws2", "p9", "Garden")
	svc.AddTask("p9", service.Task{ID: "t9", Name: "Water plants"})

	rows, err := export.NewExporter(svc).Export(context.Background(), "Personal")
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Personal", rows[0][export.ColWorkspace])
	assert.Equal(t, "Garden", rows[0][export.ColProject])
}

func TestExport_EmptyWorkspace(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddWorkspace("ws1", "Empty")

	rows, err := export.NewExporter(svc).Export(context.Background(), "Empty")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExport_MeErrorPropagates(t *testing.T) {
	svc := newAcme()
	svc.MeErr = fmt.Errorf("api error 401: %w", service.ErrUnauthorized)

	_, err := export.NewExporter(svc).Export(context.Background(), "Acme")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestExport_TaskErrorStopsExport(t *testing.T) {
	svc := newAcme()
	svc.ListProjectTasksErr["p2"] = service.ErrRateLimited

	rows, err := export.NewExporter(svc).Export(context.Background(), "Acme")
	assert.ErrorIs(t, err, service.ErrRateLimited)
	assert.Contains(t, err.Error(), "Support")
	assert.Nil(t, rows)
}

func TestCollectProjectTasks_FollowsEveryPage(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddWorkspace("ws1", "Acme")
	svc.AddProject("ws1", "p1", "Big")
	for i := 0; i < 7; i++ {
		svc.AddTask("p1", service.Task{ID: fmt.Sprintf("t%d", i), Name: fmt.Sprintf("Task %d", i)})
	}

	rows, err := export.CollectProjectTasks(context.Background(), svc,
		service.Project{ID: "p1", Name: "Big"}, map[string]string{"ws1": "Acme"}, 3)
	require.NoError(t, err)

	require.Len(t, rows, 7)
	for i, row := range rows {
		assert.Equal(t, fmt.Sprintf("t%d", i), row[export.ColTaskID])
	}

	// 3 + 3 + 1
	require.Len(t, svc.TaskQueries, 3)
	assert.Equal(t, "", svc.TaskQueries[0].Offset)
	assert.Equal(t, "3", svc.TaskQueries[1].Offset)
	assert.Equal(t, "6", svc.TaskQueries[2].Offset)
	for _, q := range svc.TaskQueries {
		assert.Equal(t, 3, q.Limit)
		assert.Equal(t, export.TaskFields, q.Fields)
	}
}

func TestCollectProjectTasks_UnknownWorkspaceIsFatal(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddWorkspace("ws1", "Acme")
	svc.AddProject("ws1", "p1", "Shared")
	svc.AddTask("p1", service.Task{ID: "t1", Name: "ok"})
	svc.AddTask("p1", service.Task{ID: "t2", Name: "foreign", Workspace: testutil.Ref("ws-other")})

	rows, err := export.CollectProjectTasks(context.Background(), svc,
		service.Project{ID: "p1", Name: "Shared"}, map[string]string{"ws1": "Acme"}, 100)

	assert.ErrorIs(t, err, export.ErrUnknownWorkspace)
	assert.Contains(t, err.Error(), "ws-other")
	assert.Nil(t, rows)
}

func TestCollectProjectTasks_RequestsFieldProjection(t *testing.T) {
	svc := newAcme()

	_, err := export.CollectProjectTasks(context.Background(), svc,
		service.Project{ID: "p1", Name: "Roadmap"}, map[string]string{"ws1": "Acme"}, 100)
	require.NoError(t, err)

	require.Len(t, svc.TaskQueries, 1)
	assert.ElementsMatch(t, []string{
		"name", "projects", "workspace", "gid", "due_on", "created_at",
		"modified_at", "completed", "completed_at", "assignee",
		"assignee_status", "parent", "notes",
	}, svc.TaskQueries[0].Fields)
}
