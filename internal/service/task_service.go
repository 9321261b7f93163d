package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"listTracker/internal/logger"
	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

type TaskService struct {
	repo TaskRepository
	now  func() time.Time
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo, now: time.Now}
}

// TaskInput is a create payload. AssignedTo defaults to the creating actor.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	AssignedTo  string
}

// TaskUpdateInput is a full-edit payload. A nil DueDate keeps the stored
// value; an empty AssignedTo defaults to the updating owner.
type TaskUpdateInput struct {
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
	AssignedTo  string
}

func (s *TaskService) CreateTask(ctx context.Context, actor string, listID int64, in TaskInput) (*models.Task, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if err := validateDueDate(in.DueDate, s.now()); err != nil {
		return nil, err
	}

	assignedTo := in.AssignedTo
	if assignedTo == "" {
		assignedTo = actor
	}

	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      models.StatusNotStarted,
		Owner:       actor,
		AssignedTo:  assignedTo,
		TodoListID:  listID,
	}
	if err := s.repo.CreateTask(ctx, actor, task); err != nil {
		return nil, wrapRepoErr(err, "todo list", listID)
	}

	logger.Info("Service: task created",
		zap.Int64("task_id", task.ID), zap.Int64("list_id", listID))
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, actor string, taskID int64) (*models.Task, error) {
	task, err := s.repo.GetTask(ctx, actor, taskID)
	if err != nil {
		return nil, wrapRepoErr(err, "task", taskID)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, actor string, listID int64, page models.PageRequest) (*models.PagedResult[models.Task], error) {
	result, err := s.repo.ListTasks(ctx, actor, listID, page)
	if err != nil {
		return nil, wrapRepoErr(err, "todo list", listID)
	}
	return result, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, actor string, taskID int64, in TaskUpdateInput) (*models.Task, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if err := validateDueDate(in.DueDate, s.now()); err != nil {
		return nil, err
	}
	status, ok := models.ParseStatus(in.Status)
	if !ok {
		return nil, NewValidationError("status", "unknown status")
	}

	task, err := s.repo.UpdateTask(ctx, actor, taskID, models.TaskUpdate{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
		AssignedTo:  in.AssignedTo,
	})
	if err != nil {
		return nil, wrapRepoErr(err, "task", taskID)
	}
	return task, nil
}

// UpdateStatus is the assignee-only transition; the repository enforces the
// identity match.
func (s *TaskService) UpdateStatus(ctx context.Context, actor string, taskID int64, statusName string) (*models.Task, error) {
	status, ok := models.ParseStatus(statusName)
	if !ok {
		return nil, NewValidationError("status", "unknown status")
	}

	task, err := s.repo.UpdateTaskStatus(ctx, actor, taskID, status)
	if err != nil {
		return nil, wrapRepoErr(err, "task", taskID)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, actor string, taskID int64) error {
	if err := s.repo.DeleteTask(ctx, actor, taskID); err != nil {
		return wrapRepoErr(err, "task", taskID)
	}
	logger.Info("Service: task deleted", zap.Int64("task_id", taskID))
	return nil
}

// ListAssigned lists the actor's assigned tasks. The empty status defaults
// to hiding Completed tasks; "All" includes every status; anything else must
// name a status (case-insensitive). Sort accepts "title" or "dueDate".
func (s *TaskService) ListAssigned(ctx context.Context, actor, statusName, sortName string, page models.PageRequest) (*models.PagedResult[models.Task], error) {
	filter := repo.AssignedFilter{}

	switch {
	case statusName == "":
		filter.Filter = repo.StatusFilterDefault
	case strings.EqualFold(statusName, "all"):
		filter.Filter = repo.StatusFilterAll
	default:
		status, ok := models.ParseStatus(statusName)
		if !ok {
			return nil, NewValidationError("status", "unknown status")
		}
		filter.Filter = repo.StatusFilterExact
		filter.Status = status
	}

	switch {
	case sortName == "":
		filter.Sort = repo.SortNone
	case strings.EqualFold(sortName, "title"):
		filter.Sort = repo.SortTitle
	case strings.EqualFold(sortName, "duedate"):
		filter.Sort = repo.SortDueDate
	default:
		return nil, NewValidationError("sort", "must be 'title' or 'dueDate'")
	}

	result, err := s.repo.ListAssigned(ctx, actor, filter, page)
	if err != nil {
		return nil, wrapRepoErr(err, "tasks", nil)
	}
	return result, nil
}

const searchDateLayout = "2006-01-02"

// Search matches tasks across the actor's lists by title substring, creation
// or due date (YYYY-MM-DD, compared by calendar day) and tag label.
func (s *TaskService) Search(ctx context.Context, actor, title, creationDate, dueDate, tag string, page models.PageRequest) (*models.PagedResult[models.Task], error) {
	q := repo.SearchQuery{Title: title, Tag: tag}

	if creationDate != "" {
		parsed, err := time.Parse(searchDateLayout, creationDate)
		if err != nil {
			return nil, NewValidationError("creationDate", "must be formatted YYYY-MM-DD")
		}
		q.CreationDate = &parsed
	}
	if dueDate != "" {
		parsed, err := time.Parse(searchDateLayout, dueDate)
		if err != nil {
			return nil, NewValidationError("dueDate", "must be formatted YYYY-MM-DD")
		}
		q.DueDate = &parsed
	}

	result, err := s.repo.SearchTasks(ctx, actor, q, page)
	if err != nil {
		return nil, wrapRepoErr(err, "tasks", nil)
	}
	return result, nil
}
