package service

import (
	"context"

	"go.uber.org/zap"

	"listTracker/internal/logger"
	"listTracker/internal/models"
)

type ListService struct {
	repo ListRepository
}

func NewListService(repo ListRepository) *ListService {
	return &ListService{repo: repo}
}

// CreateList makes a new list; the creating actor becomes its first Owner.
func (s *ListService) CreateList(ctx context.Context, actor, title, description string) (*models.TodoList, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	list := &models.TodoList{Title: title, Description: description}
	if err := s.repo.CreateList(ctx, actor, list); err != nil {
		return nil, wrapRepoErr(err, "todo list", nil)
	}

	logger.Info("Service: list created", zap.Int64("list_id", list.ID))
	return list, nil
}

func (s *ListService) GetList(ctx context.Context, actor string, listID int64) (*models.TodoList, error) {
	list, err := s.repo.GetList(ctx, actor, listID)
	if err != nil {
		return nil, wrapRepoErr(err, "todo list", listID)
	}
	return list, nil
}

func (s *ListService) ListLists(ctx context.Context, actor string, page models.PageRequest) (*models.PagedResult[models.TodoList], error) {
	result, err := s.repo.ListLists(ctx, actor, page)
	if err != nil {
		return nil, wrapRepoErr(err, "todo lists", nil)
	}
	return result, nil
}

func (s *ListService) UpdateList(ctx context.Context, actor string, listID int64, title, description string) (*models.TodoList, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	list, err := s.repo.UpdateList(ctx, actor, listID, title, description)
	if err != nil {
		return nil, wrapRepoErr(err, "todo list", listID)
	}
	return list, nil
}

func (s *ListService) DeleteList(ctx context.Context, actor string, listID int64) error {
	if err := s.repo.DeleteList(ctx, actor, listID); err != nil {
		return wrapRepoErr(err, "todo list", listID)
	}
	logger.Info("Service: list deleted", zap.Int64("list_id", listID))
	return nil
}
