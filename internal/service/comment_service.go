package service

import (
	"context"

	"listTracker/internal/models"
)

type CommentService struct {
	repo CommentRepository
}

func NewCommentService(repo CommentRepository) *CommentService {
	return &CommentService{repo: repo}
}

func (s *CommentService) CreateComment(ctx context.Context, actor string, taskID int64, text string) (*models.Comment, error) {
	if err := validateCommentText(text); err != nil {
		return nil, err
	}

	comment := &models.Comment{Text: text, Owner: actor, TaskID: taskID}
	if err := s.repo.CreateComment(ctx, actor, comment); err != nil {
		return nil, wrapRepoErr(err, "task", taskID)
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, actor string, taskID int64, page models.PageRequest) (*models.PagedResult[models.Comment], error) {
	result, err := s.repo.ListComments(ctx, actor, taskID, page)
	if err != nil {
		return nil, wrapRepoErr(err, "task", taskID)
	}
	return result, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, actor string, commentID int64, text string) (*models.Comment, error) {
	if err := validateCommentText(text); err != nil {
		return nil, err
	}

	comment, err := s.repo.UpdateComment(ctx, actor, commentID, text)
	if err != nil {
		return nil, wrapRepoErr(err, "comment", commentID)
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, actor string, commentID int64) error {
	if err := s.repo.DeleteComment(ctx, actor, commentID); err != nil {
		return wrapRepoErr(err, "comment", commentID)
	}
	return nil
}
