package repository

import (
	"time"

	"listTracker/internal/models"
)

type StatusFilter int

const (
	// StatusFilterDefault excludes Completed tasks.
	StatusFilterDefault StatusFilter = iota
	StatusFilterAll
	StatusFilterExact
)

type SortOrder string

const (
	SortNone    SortOrder = ""
	SortTitle   SortOrder = "title"
	SortDueDate SortOrder = "dueDate"
)

// AssignedFilter narrows the assigned-task listing. Status is only consulted
// when Filter is StatusFilterExact.
type AssignedFilter struct {
	Filter StatusFilter
	Status models.Status
	Sort   SortOrder
}

// SearchQuery matches tasks across every list the actor holds a role on.
// Date fields compare calendar days, not instants.
type SearchQuery struct {
	Title        string
	CreationDate *time.Time
	DueDate      *time.Time
	Tag          string
}
