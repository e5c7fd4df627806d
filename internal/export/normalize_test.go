package export

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"asana2csv/internal/service"
)

func str(s string) *string { return &s }

func TestNormalizeTask_AllFields(t *testing.T) {
	task := service.Task{
		ID:             "1201",
		Name:           "Write report",
		DueOn:          str("2023-05-10"),
		CreatedAt:      str("2023-05-04T09:30:00.000Z"),
		ModifiedAt:     str("2023-05-05T17:01:59.123Z"),
		CompletedAt:    str("2023-05-06T08:05:00.000Z"),
		Completed:      true,
		Assignee:       &service.Ref{ID: "42"},
		AssigneeStatus: str("today"),
		Parent:         &service.Ref{ID: "1100"},
		Notes:          str("short note"),
		Workspace:      &service.Ref{ID: "ws1"},
	}

	row := NormalizeTask(task, "Reports", "Acme")

	want := Row{
		"Write report", "Reports", "Acme", "2023-05-10", "2023-05-04 09:30",
		"2023-05-05 17:01", "true", "2023-05-06 08:05", "42", "today",
		"1100", "short note", "1201",
	}
	assert.Equal(t, want, row)
}

func TestNormalizeTask_AbsentFieldsAreEmpty(t *testing.T) {
	row := NormalizeTask(service.Task{ID: "7", Name: "Bare"}, "P", "W")

	for _, col := range []int{ColDueDate, ColCreatedAt, ColModifiedAt, ColCompletedAt,
		ColAssignee, ColAssigneeStatus, ColParent, ColNotes} {
		assert.Equal(t, "", row[col], "column %s", Header[col])
	}
	assert.Equal(t, "false", row[ColCompleted])
	assert.Equal(t, "7", row[ColTaskID])
}

func TestNormalizeTask_RowMatchesHeader(t *testing.T) {
	row := NormalizeTask(service.Task{}, "", "")
	assert.Len(t, row.Strings(), len(Header))
}

func TestNormalizeTask_LongNotesTruncatedTo79(t *testing.T) {
	notes := strings.Repeat("abcdefghij", 10) // 100 chars
	row := NormalizeTask(service.Task{Notes: &notes}, "P", "W")

	assert.Len(t, row[ColNotes], 79)
	assert.Equal(t, notes[:79], row[ColNotes])
}

func TestNormalizeTask_Notes81Truncated(t *testing.T) {
	notes := strings.Repeat("x", 81)
	row := NormalizeTask(service.Task{Notes: &notes}, "P", "W")
	assert.Equal(t, strings.Repeat("x", 79), row[ColNotes])
}

func TestNormalizeTask_NotesUpTo80Unchanged(t *testing.T) {
	for _, n := range []int{0, 1, 79, 80} {
		notes := strings.Repeat("y", n)
		row := NormalizeTask(service.Task{Notes: &notes}, "P", "W")
		assert.Equal(t, notes, row[ColNotes], "length %d", n)
	}
}

func TestNormalizeTask_NotesCountCharactersNotBytes(t *testing.T) {
	notes := strings.Repeat("é", 81)
	row := NormalizeTask(service.Task{Notes: &notes}, "P", "W")

	assert.Equal(t, 79, utf8.RuneCountInString(row[ColNotes]))
	assert.True(t, utf8.ValidString(row[ColNotes]))
}

func TestFormatTimestamp(t *testing.T) {
	tests := map[string]string{
		"2023-05-04T09:30:00.000Z":  "2023-05-04 09:30",
		"2024-03-01T23:59:59":       "2024-03-01 23:59",
		"2024-03-01T00:00:00+02:00": "2024-03-01 00:00",
		"2024-03-01T07":             "2024-03-01 07",
		"2024-03-01":                "2024-03-01 ",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatTimestamp(&in), "input %q", in)
	}
	assert.Equal(t, "", formatTimestamp(nil))
}
