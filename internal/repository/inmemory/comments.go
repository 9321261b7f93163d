package inmemory

import (
	"context"

	"listTracker/internal/access"
	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

func (s *Store) CreateComment(ctx context.Context, actor string, comment *models.Comment) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	_, role, err := s.taskRole(comment.TaskID, actor)
	if err != nil {
		return err
	}
	if err := repo.RequireRole(actor, role, access.ActionCommentAdd); err != nil {
		return err
	}

	comment.ID = s.allocID()
	stored := *comment
	s.comments[comment.ID] = &stored
	return nil
}

func (s *Store) ListComments(ctx context.Context, actor string, taskID int64, page models.PageRequest) (*models.PagedResult[models.Comment], error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	_, role, err := s.taskRole(taskID, actor)
	if err != nil {
		return nil, err
	}
	if err := repo.RequireRole(actor, role, access.ActionTaskRead); err != nil {
		return nil, err
	}

	comments := []models.Comment{}
	for _, c := range s.comments {
		if c.TaskID == taskID {
			comments = append(comments, *c)
		}
	}
	sortByIDAsc(comments, func(c models.Comment) int64 { return c.ID })

	return paginate(comments, page)
}

func (s *Store) UpdateComment(ctx context.Context, actor string, commentID int64, text string) (*models.Comment, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	c, role, err := s.commentRole(commentID, actor)
	if err != nil {
		return nil, err
	}
	if err := repo.RequireRole(actor, role, access.ActionCommentEdit); err != nil {
		return nil, err
	}

	c.Text = text
	copied := *c
	return &copied, nil
}

func (s *Store) DeleteComment(ctx context.Context, actor string, commentID int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	_, role, err := s.commentRole(commentID, actor)
	if err != nil {
		return err
	}
	if err := repo.RequireRole(actor, role, access.ActionCommentEdit); err != nil {
		return err
	}

	delete(s.comments, commentID)
	return nil
}
