package inmemory

import (
	"context"
	"sort"

	"listTracker/internal/access"
	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

func (s *Store) AttachTag(ctx context.Context, actor string, taskID int64, label string) (*models.Tag, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	_, role, err := s.taskRole(taskID, actor)
	if err != nil {
		return nil, err
	}
	if err := repo.RequireRole(actor, role, access.ActionTagAttach); err != nil {
		return nil, err
	}

	var tag *models.Tag
	for _, existing := range s.tags {
		if existing.Label == label {
			tag = existing
			break
		}
	}
	if tag == nil {
		tag = &models.Tag{ID: s.allocID(), Label: label}
		s.tags[tag.ID] = tag
	}

	if s.taskTags[taskID][tag.ID] {
		return nil, repo.ErrDuplicateTag
	}
	if s.taskTags[taskID] == nil {
		s.taskTags[taskID] = make(map[int64]bool)
	}
	s.taskTags[taskID][tag.ID] = true

	copied := *tag
	return &copied, nil
}

func (s *Store) DetachTag(ctx context.Context, actor string, taskID, tagID int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	_, role, err := s.taskRole(taskID, actor)
	if err != nil {
		return err
	}
	if err := repo.RequireRole(actor, role, access.ActionTagDetach); err != nil {
		return err
	}

	if !s.taskTags[taskID][tagID] {
		return repo.ErrNotFound
	}
	delete(s.taskTags[taskID], tagID)
	return nil
}

func (s *Store) ListTags(ctx context.Context, actor string, taskID int64) ([]models.Tag, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	_, role, err := s.taskRole(taskID, actor)
	if err != nil {
		return nil, err
	}
	if err := repo.RequireRole(actor, role, access.ActionTaskRead); err != nil {
		return nil, err
	}

	tags := []models.Tag{}
	for tagID := range s.taskTags[taskID] {
		if tag, ok := s.tags[tagID]; ok {
			tags = append(tags, *tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Label < tags[j].Label })
	return tags, nil
}
