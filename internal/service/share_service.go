package service

import (
	"context"

	"go.uber.org/zap"

	"listTracker/internal/logger"
	"listTracker/internal/models"
)

type ShareService struct {
	repo ShareRepository
}

func NewShareService(repo ShareRepository) *ShareService {
	return &ShareService{repo: repo}
}

// AddShare grants a user a role on a list. Only the list Owner may manage
// sharing.
func (s *ShareService) AddShare(ctx context.Context, actor string, listID int64, userName, roleName string) (*models.RoleAssignment, error) {
	if userName == "" {
		return nil, NewValidationError("userName", "must not be empty")
	}
	role, ok := models.ParseRole(roleName)
	if !ok {
		return nil, NewValidationError("role", "must be Viewer, Editor or Owner")
	}

	share := models.RoleAssignment{TodoListID: listID, UserName: userName, Role: role}
	if err := s.repo.AddShare(ctx, actor, share); err != nil {
		return nil, wrapRepoErr(err, "todo list", listID)
	}

	logger.Info("Service: collaborator added",
		zap.Int64("list_id", listID), zap.String("role", string(role)))
	return &share, nil
}

func (s *ShareService) UpdateShareRole(ctx context.Context, actor string, listID int64, userName, roleName string) (*models.RoleAssignment, error) {
	role, ok := models.ParseRole(roleName)
	if !ok {
		return nil, NewValidationError("role", "must be Viewer, Editor or Owner")
	}

	if err := s.repo.UpdateShareRole(ctx, actor, listID, userName, role); err != nil {
		return nil, wrapRepoErr(err, "role assignment", userName)
	}
	return &models.RoleAssignment{TodoListID: listID, UserName: userName, Role: role}, nil
}

func (s *ShareService) RemoveShare(ctx context.Context, actor string, listID int64, userName string) error {
	if err := s.repo.RemoveShare(ctx, actor, listID, userName); err != nil {
		return wrapRepoErr(err, "role assignment", userName)
	}
	logger.Info("Service: collaborator removed", zap.Int64("list_id", listID))
	return nil
}

func (s *ShareService) ListShares(ctx context.Context, actor string, listID int64) ([]models.RoleAssignment, error) {
	shares, err := s.repo.ListShares(ctx, actor, listID)
	if err != nil {
		return nil, wrapRepoErr(err, "todo list", listID)
	}
	return shares, nil
}
