// Package export turns a workspace's remote tasks into flat CSV rows.
package export

import (
	"strconv"

	"asana2csv/internal/service"
)

// Column positions of a Row.
const (
	ColTask = iota
	ColProject
	ColWorkspace
	ColDueDate
	ColCreatedAt
	ColModifiedAt
	ColCompleted
	ColCompletedAt
	ColAssignee
	ColAssigneeStatus
	ColParent
	ColNotes
	ColTaskID

	NumColumns
)

// Header is the CSV header, in Row order.
var Header = []string{
	"Task", "Project", "Workspace", "DueDate", "CreatedAt",
	"ModifiedAt", "Completed", "CompletedAt", "Assignee", "AssigneeStatus",
	"Parent", "Notes", "Taskgid",
}

// Row is one output record. Absent values are empty strings.
type Row [NumColumns]string

// Strings returns the row as a slice for encoders.
func (r Row) Strings() []string {
	return r[:]
}

const (
	maxNotesLen   = 80
	truncNotesLen = 79
)

// NormalizeTask flattens a task into a Row.
func NormalizeTask(task service.Task, projectName, workspaceName string) Row {
	var row Row
	row[ColTask] = task.Name
	row[ColProject] = projectName
	row[ColWorkspace] = workspaceName
	row[ColDueDate] = deref(task.DueOn)
	row[ColCreatedAt] = formatTimestamp(task.CreatedAt)
	row[ColModifiedAt] = formatTimestamp(task.ModifiedAt)
	row[ColCompleted] = strconv.FormatBool(task.Completed)
	row[ColCompletedAt] = formatTimestamp(task.CompletedAt)
	row[ColAssignee] = refID(task.Assignee)
	row[ColAssigneeStatus] = deref(task.AssigneeStatus)
	row[ColParent] = refID(task.Parent)
	row[ColNotes] = truncateNotes(deref(task.Notes))
	row[ColTaskID] = task.ID
	return row
}

// truncateNotes keeps the first 79 characters of notes longer than 80.
func truncateNotes(notes string) string {
	r := []rune(notes)
	if len(r) > maxNotesLen {
		return string(r[:truncNotesLen])
	}
	return notes
}

// formatTimestamp turns "YYYY-MM-DDTHH:MM:SS..." into "YYYY-MM-DD HH:MM".
func formatTimestamp(ts *string) string {
	if ts == nil {
		return ""
	}
	return clip(*ts, 0, 10) + " " + clip(*ts, 11, 16)
}

// clip returns s[i:j] bounded to the length of s.
func clip(s string, i, j int) string {
	if i > len(s) {
		return ""
	}
	if j > len(s) {
		j = len(s)
	}
	return s[i:j]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func refID(r *service.Ref) string {
	if r == nil {
		return ""
	}
	return r.ID
}
