package inmemory

import (
	"context"

	"listTracker/internal/access"
	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

func (s *Store) CreateList(ctx context.Context, actor string, list *models.TodoList) error {
	if d := access.Authorize(actor, models.RoleNone, access.ActionListCreate); !d.Allowed {
		return repo.ErrForbidden
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	list.ID = s.allocID()
	stored := *list
	s.lists[list.ID] = &stored
	s.roles[list.ID] = map[string]models.Role{actor: models.RoleOwner}
	return nil
}

func (s *Store) GetList(ctx context.Context, actor string, listID int64) (*models.TodoList, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	role, err := s.roleOn(listID, actor)
	if err != nil {
		return nil, err
	}
	if err := repo.RequireRole(actor, role, access.ActionListRead); err != nil {
		return nil, err
	}

	copied := *s.lists[listID]
	return &copied, nil
}

func (s *Store) ListLists(ctx context.Context, actor string, page models.PageRequest) (*models.PagedResult[models.TodoList], error) {
	if actor == "" {
		return nil, repo.ErrForbidden
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	visible := []models.TodoList{}
	for id, l := range s.lists {
		if s.roles[id][actor] != models.RoleNone {
			visible = append(visible, *l)
		}
	}
	sortByIDAsc(visible, func(l models.TodoList) int64 { return l.ID })

	return paginate(visible, page)
}

func (s *Store) UpdateList(ctx context.Context, actor string, listID int64, title, description string) (*models.TodoList, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	role, err := s.roleOn(listID, actor)
	if err != nil {
		return nil, err
	}
	if err := repo.RequireRole(actor, role, access.ActionListUpdate); err != nil {
		return nil, err
	}

	l := s.lists[listID]
	l.Title = title
	l.Description = description
	copied := *l
	return &copied, nil
}

// DeleteList cascades to the list's tasks, their comments and tag
// associations, and the list's role rows. Tag rows themselves survive.
func (s *Store) DeleteList(ctx context.Context, actor string, listID int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	role, err := s.roleOn(listID, actor)
	if err != nil {
		return err
	}
	if err := repo.RequireRole(actor, role, access.ActionListDelete); err != nil {
		return err
	}

	for taskID, t := range s.tasks {
		if t.TodoListID != listID {
			continue
		}
		s.dropTask(taskID)
	}
	delete(s.lists, listID)
	delete(s.roles, listID)
	return nil
}

// dropTask removes a task with its comments and tag associations. Callers
// hold the write lock.
func (s *Store) dropTask(taskID int64) {
	for commentID, c := range s.comments {
		if c.TaskID == taskID {
			delete(s.comments, commentID)
		}
	}
	delete(s.taskTags, taskID)
	delete(s.tasks, taskID)
}
