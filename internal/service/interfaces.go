package service

import (
	"context"

	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

// Repository interfaces are declared here, on the consumer side; both the
// postgres storage and the inmemory store satisfy all of them.

type ListRepository interface {
	CreateList(ctx context.Context, actor string, list *models.TodoList) error
	GetList(ctx context.Context, actor string, listID int64) (*models.TodoList, error)
	ListLists(ctx context.Context, actor string, page models.PageRequest) (*models.PagedResult[models.TodoList], error)
	UpdateList(ctx context.Context, actor string, listID int64, title, description string) (*models.TodoList, error)
	DeleteList(ctx context.Context, actor string, listID int64) error
}

type TaskRepository interface {
	CreateTask(ctx context.Context, actor string, task *models.Task) error
	GetTask(ctx context.Context, actor string, taskID int64) (*models.Task, error)
	ListTasks(ctx context.Context, actor string, listID int64, page models.PageRequest) (*models.PagedResult[models.Task], error)
	UpdateTask(ctx context.Context, actor string, taskID int64, upd models.TaskUpdate) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, actor string, taskID int64, status models.Status) (*models.Task, error)
	DeleteTask(ctx context.Context, actor string, taskID int64) error
	ListAssigned(ctx context.Context, actor string, filter repo.AssignedFilter, page models.PageRequest) (*models.PagedResult[models.Task], error)
	SearchTasks(ctx context.Context, actor string, q repo.SearchQuery, page models.PageRequest) (*models.PagedResult[models.Task], error)
}

type TagRepository interface {
	AttachTag(ctx context.Context, actor string, taskID int64, label string) (*models.Tag, error)
	DetachTag(ctx context.Context, actor string, taskID, tagID int64) error
	ListTags(ctx context.Context, actor string, taskID int64) ([]models.Tag, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, actor string, comment *models.Comment) error
	ListComments(ctx context.Context, actor string, taskID int64, page models.PageRequest) (*models.PagedResult[models.Comment], error)
	UpdateComment(ctx context.Context, actor string, commentID int64, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, actor string, commentID int64) error
}

type ShareRepository interface {
	AddShare(ctx context.Context, actor string, share models.RoleAssignment) error
	UpdateShareRole(ctx context.Context, actor string, listID int64, userName string, newRole models.Role) error
	RemoveShare(ctx context.Context, actor string, listID int64, userName string) error
	ListShares(ctx context.Context, actor string, listID int64) ([]models.RoleAssignment, error)
}

// Store is the full surface a storage backend provides.
type Store interface {
	ListRepository
	TaskRepository
	TagRepository
	CommentRepository
	ShareRepository
	HealthCheck(ctx context.Context) error
	Close()
}
