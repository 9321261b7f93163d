package service

import (
	"context"

	"go.uber.org/zap"

	"listTracker/internal/logger"
	"listTracker/internal/models"
)

type TagService struct {
	repo TagRepository
}

func NewTagService(repo TagRepository) *TagService {
	return &TagService{repo: repo}
}

// AttachTag adds a tag to a task. An existing tag with the same label is
// reused; attaching a label the task already carries is a conflict.
func (s *TagService) AttachTag(ctx context.Context, actor string, taskID int64, label string) (*models.Tag, error) {
	if err := validateTagLabel(label); err != nil {
		return nil, err
	}

	tag, err := s.repo.AttachTag(ctx, actor, taskID, label)
	if err != nil {
		return nil, wrapRepoErr(err, "task", taskID)
	}

	logger.Info("Service: tag attached",
		zap.Int64("task_id", taskID), zap.Int64("tag_id", tag.ID))
	return tag, nil
}

// DetachTag removes the association only; the tag row stays for any other
// tasks sharing the label.
func (s *TagService) DetachTag(ctx context.Context, actor string, taskID, tagID int64) error {
	if err := s.repo.DetachTag(ctx, actor, taskID, tagID); err != nil {
		return wrapRepoErr(err, "tag", tagID)
	}
	return nil
}

func (s *TagService) ListTags(ctx context.Context, actor string, taskID int64) ([]models.Tag, error) {
	tags, err := s.repo.ListTags(ctx, actor, taskID)
	if err != nil {
		return nil, wrapRepoErr(err, "task", taskID)
	}
	return tags, nil
}
