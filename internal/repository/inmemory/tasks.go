package inmemory

import (
	"context"
	"sort"
	"strings"
	"time"

	"listTracker/internal/access"
	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

func (s *Store) CreateTask(ctx context.Context, actor string, task *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	role, err := s.roleOn(task.TodoListID, actor)
	if err != nil {
		return err
	}
	if err := repo.RequireRole(actor, role, access.ActionTaskCreate); err != nil {
		return err
	}

	task.ID = s.allocID()
	task.CreatedDate = s.now()
	stored := *task
	s.tasks[task.ID] = &stored
	return nil
}

func (s *Store) GetTask(ctx context.Context, actor string, taskID int64) (*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, role, err := s.taskRole(taskID, actor)
	if err != nil {
		return nil, err
	}
	if err := repo.RequireRole(actor, role, access.ActionTaskRead); err != nil {
		return nil, err
	}

	copied := *t
	return &copied, nil
}

func (s *Store) ListTasks(ctx context.Context, actor string, listID int64, page models.PageRequest) (*models.PagedResult[models.Task], error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	role, err := s.roleOn(listID, actor)
	if err != nil {
		return nil, err
	}
	if err := repo.RequireRole(actor, role, access.ActionTaskRead); err != nil {
		return nil, err
	}

	tasks := []models.Task{}
	for _, t := range s.tasks {
		if t.TodoListID == listID {
			tasks = append(tasks, *t)
		}
	}
	sortCreatedDesc(tasks)

	return paginate(tasks, page)
}

func (s *Store) UpdateTask(ctx context.Context, actor string, taskID int64, upd models.TaskUpdate) (*models.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, role, err := s.taskRole(taskID, actor)
	if err != nil {
		return nil, err
	}
	if err := repo.RequireRole(actor, role, access.ActionTaskUpdate); err != nil {
		return nil, err
	}

	t.Title = upd.Title
	t.Description = upd.Description
	t.Status = upd.Status
	if upd.DueDate != nil {
		t.DueDate = upd.DueDate
	}
	if upd.AssignedTo != "" {
		t.AssignedTo = upd.AssignedTo
	} else {
		t.AssignedTo = actor
	}

	copied := *t
	return &copied, nil
}

func (s *Store) UpdateTaskStatus(ctx context.Context, actor string, taskID int64, status models.Status) (*models.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, role, err := s.taskRole(taskID, actor)
	if err != nil {
		return nil, err
	}
	if err := repo.RequireAssignee(actor, t.AssignedTo, role); err != nil {
		return nil, err
	}

	t.Status = status
	copied := *t
	return &copied, nil
}

func (s *Store) DeleteTask(ctx context.Context, actor string, taskID int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	_, role, err := s.taskRole(taskID, actor)
	if err != nil {
		return err
	}
	if err := repo.RequireRole(actor, role, access.ActionTaskDelete); err != nil {
		return err
	}

	s.dropTask(taskID)
	return nil
}

func (s *Store) ListAssigned(ctx context.Context, actor string, filter repo.AssignedFilter, page models.PageRequest) (*models.PagedResult[models.Task], error) {
	if actor == "" {
		return nil, repo.ErrForbidden
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tasks := []models.Task{}
	for _, t := range s.tasks {
		if t.AssignedTo != actor {
			continue
		}
		switch filter.Filter {
		case repo.StatusFilterDefault:
			if t.Status == models.StatusCompleted {
				continue
			}
		case repo.StatusFilterExact:
			if t.Status != filter.Status {
				continue
			}
		}
		tasks = append(tasks, *t)
	}

	switch filter.Sort {
	case repo.SortTitle:
		sort.Slice(tasks, func(i, j int) bool {
			if tasks[i].Title != tasks[j].Title {
				return tasks[i].Title < tasks[j].Title
			}
			return tasks[i].ID < tasks[j].ID
		})
	case repo.SortDueDate:
		sort.Slice(tasks, func(i, j int) bool {
			di, dj := tasks[i].DueDate, tasks[j].DueDate
			switch {
			case di == nil && dj == nil:
				return tasks[i].ID < tasks[j].ID
			case di == nil:
				return false
			case dj == nil:
				return true
			case !di.Equal(*dj):
				return di.Before(*dj)
			}
			return tasks[i].ID < tasks[j].ID
		})
	default:
		sortCreatedDesc(tasks)
	}

	return paginate(tasks, page)
}

func (s *Store) SearchTasks(ctx context.Context, actor string, q repo.SearchQuery, page models.PageRequest) (*models.PagedResult[models.Task], error) {
	if actor == "" {
		return nil, repo.ErrForbidden
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tasks := []models.Task{}
	for _, t := range s.tasks {
		if s.roles[t.TodoListID][actor] == models.RoleNone {
			continue
		}
		if q.Title != "" && !strings.Contains(t.Title, q.Title) {
			continue
		}
		if q.CreationDate != nil && !sameDay(t.CreatedDate, *q.CreationDate) {
			continue
		}
		if q.DueDate != nil && (t.DueDate == nil || !sameDay(*t.DueDate, *q.DueDate)) {
			continue
		}
		if q.Tag != "" && !s.taskHasLabel(t.ID, q.Tag) {
			continue
		}
		tasks = append(tasks, *t)
	}
	sortCreatedDesc(tasks)

	return paginate(tasks, page)
}

func (s *Store) taskHasLabel(taskID int64, label string) bool {
	for tagID := range s.taskTags[taskID] {
		if tag, ok := s.tags[tagID]; ok && tag.Label == label {
			return true
		}
	}
	return false
}

func sortCreatedDesc(tasks []models.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedDate.Equal(tasks[j].CreatedDate) {
			return tasks[i].CreatedDate.After(tasks[j].CreatedDate)
		}
		return tasks[i].ID > tasks[j].ID
	})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
