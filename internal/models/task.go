package models

import (
	"strings"
	"time"
)

type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

// ParseStatus accepts status names case-insensitively.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(s) {
	case "notstarted":
		return StatusNotStarted, true
	case "inprogress":
		return StatusInProgress, true
	case "completed":
		return StatusCompleted, true
	}
	return "", false
}

type Task struct {
	ID          int64
	Title       string
	Description string
	CreatedDate time.Time
	DueDate     *time.Time
	Status      Status
	Owner       string
	AssignedTo  string
	TodoListID  int64
}

// IsActive is derived from status alone.
func (t *Task) IsActive() bool {
	return t.Status == StatusNotStarted || t.Status == StatusInProgress
}

// IsOverdue compares date parts only: a task is overdue once its due date's
// calendar day lies before today, regardless of status.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	due := t.DueDate
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dueDay.Before(today)
}

// TaskUpdate carries a full task edit. A nil DueDate means "keep the stored
// value"; an empty AssignedTo defaults to the updating owner.
type TaskUpdate struct {
	Title       string
	Description string
	Status      Status
	DueDate     *time.Time
	AssignedTo  string
}
