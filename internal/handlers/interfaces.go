package handlers

import (
	"context"

	"listTracker/internal/models"
	"listTracker/internal/service"
)

type ListService interface {
	CreateList(ctx context.Context, actor, title, description string) (*models.TodoList, error)
	GetList(ctx context.Context, actor string, listID int64) (*models.TodoList, error)
	ListLists(ctx context.Context, actor string, page models.PageRequest) (*models.PagedResult[models.TodoList], error)
	UpdateList(ctx context.Context, actor string, listID int64, title, description string) (*models.TodoList, error)
	DeleteList(ctx context.Context, actor string, listID int64) error
}

type TaskService interface {
	CreateTask(ctx context.Context, actor string, listID int64, in service.TaskInput) (*models.Task, error)
	GetTask(ctx context.Context, actor string, taskID int64) (*models.Task, error)
	ListTasks(ctx context.Context, actor string, listID int64, page models.PageRequest) (*models.PagedResult[models.Task], error)
	UpdateTask(ctx context.Context, actor string, taskID int64, in service.TaskUpdateInput) (*models.Task, error)
	UpdateStatus(ctx context.Context, actor string, taskID int64, status string) (*models.Task, error)
	DeleteTask(ctx context.Context, actor string, taskID int64) error
	ListAssigned(ctx context.Context, actor, status, sort string, page models.PageRequest) (*models.PagedResult[models.Task], error)
	Search(ctx context.Context, actor, title, creationDate, dueDate, tag string, page models.PageRequest) (*models.PagedResult[models.Task], error)
}

type TagService interface {
	AttachTag(ctx context.Context, actor string, taskID int64, label string) (*models.Tag, error)
	DetachTag(ctx context.Context, actor string, taskID, tagID int64) error
	ListTags(ctx context.Context, actor string, taskID int64) ([]models.Tag, error)
}

type CommentService interface {
	CreateComment(ctx context.Context, actor string, taskID int64, text string) (*models.Comment, error)
	ListComments(ctx context.Context, actor string, taskID int64, page models.PageRequest) (*models.PagedResult[models.Comment], error)
	UpdateComment(ctx context.Context, actor string, commentID int64, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, actor string, commentID int64) error
}

type ShareService interface {
	AddShare(ctx context.Context, actor string, listID int64, userName, role string) (*models.RoleAssignment, error)
	UpdateShareRole(ctx context.Context, actor string, listID int64, userName, role string) (*models.RoleAssignment, error)
	RemoveShare(ctx context.Context, actor string, listID int64, userName string) error
	ListShares(ctx context.Context, actor string, listID int64) ([]models.RoleAssignment, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
