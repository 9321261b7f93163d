// Package dto is the single mapping boundary between the canonical domain
// models and the wire format.
package dto

import (
	"time"

	"listTracker/internal/models"
)

type CreateTodoListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateTodoListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
}

type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

type AttachTagRequest struct {
	Label string `json:"label"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type AddShareRequest struct {
	UserName string `json:"userName"`
	Role     string `json:"role"`
}

type UpdateShareRequest struct {
	Role string `json:"role"`
}

type TodoListResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	CreatedDate time.Time  `json:"createdDate"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      string     `json:"status"`
	Owner       string     `json:"owner"`
	AssignedTo  string     `json:"assignedTo"`
	TodoListID  int64      `json:"todoListId"`
	IsActive    bool       `json:"isActive"`
	IsOverdue   bool       `json:"isOverdue"`
}

type TagResponse struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

type CommentResponse struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	Owner  string `json:"owner"`
	TaskID int64  `json:"taskId"`
}

// TodoListUserResponse is the wire shape of a role assignment.
type TodoListUserResponse struct {
	UserName   string `json:"userName"`
	TodoListID int64  `json:"todoListId"`
	Role       string `json:"role"`
}

type PagedResponse[T any] struct {
	Items        []T `json:"items"`
	TotalCount   int `json:"totalCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func FromTodoList(l *models.TodoList) TodoListResponse {
	return TodoListResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: optional(l.Description),
	}
}

func FromTask(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: optional(t.Description),
		CreatedDate: t.CreatedDate,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		Owner:       t.Owner,
		AssignedTo:  t.AssignedTo,
		TodoListID:  t.TodoListID,
		IsActive:    t.IsActive(),
		IsOverdue:   t.IsOverdue(time.Now()),
	}
}

func FromTag(t *models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Label: t.Label}
}

func FromComment(c *models.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, Text: c.Text, Owner: c.Owner, TaskID: c.TaskID}
}

func FromRoleAssignment(a *models.RoleAssignment) TodoListUserResponse {
	return TodoListUserResponse{
		UserName:   a.UserName,
		TodoListID: a.TodoListID,
		Role:       string(a.Role),
	}
}

// FromPaged converts one page of domain entities into its wire shape.
func FromPaged[T, R any](p *models.PagedResult[T], conv func(*T) R) PagedResponse[R] {
	items := make([]R, len(p.Items))
	for i := range p.Items {
		items[i] = conv(&p.Items[i])
	}
	return PagedResponse[R]{
		Items:        items,
		TotalCount:   p.TotalCount,
		ItemsPerPage: p.ItemsPerPage,
		CurrentPage:  p.CurrentPage,
		TotalPages:   p.TotalPages(),
	}
}
