// Package inmemory implements the repository interfaces over plain maps.
// It mirrors the postgres semantics exactly, including the authorization
// checks, and backs tests and database-less runs.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

type Store struct {
	mtx    sync.RWMutex
	nextID int64

	lists    map[int64]*models.TodoList
	tasks    map[int64]*models.Task
	tags     map[int64]*models.Tag
	comments map[int64]*models.Comment

	// listID → userName → role
	roles map[int64]map[string]models.Role
	// taskID → set of tagIDs
	taskTags map[int64]map[int64]bool

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		lists:    make(map[int64]*models.TodoList),
		tasks:    make(map[int64]*models.Task),
		tags:     make(map[int64]*models.Tag),
		comments: make(map[int64]*models.Comment),
		roles:    make(map[int64]map[string]models.Role),
		taskTags: make(map[int64]map[int64]bool),
		now:      time.Now,
	}
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *Store) Close() {}

// allocID hands out monotonically increasing ids across all entity kinds,
// matching the "system-assigned unique id" contract without per-table
// sequences.
func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

// roleOn resolves the actor's role on a list. Missing list → ErrNotFound;
// missing role row → RoleNone.
func (s *Store) roleOn(listID int64, actor string) (models.Role, error) {
	if _, ok := s.lists[listID]; !ok {
		return models.RoleNone, repo.ErrNotFound
	}
	return s.roles[listID][actor], nil
}

// taskRole resolves a task and the actor's role on its parent list.
func (s *Store) taskRole(taskID int64, actor string) (*models.Task, models.Role, error) {
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, models.RoleNone, repo.ErrNotFound
	}
	return t, s.roles[t.TodoListID][actor], nil
}

func (s *Store) commentRole(commentID int64, actor string) (*models.Comment, models.Role, error) {
	c, ok := s.comments[commentID]
	if !ok {
		return nil, models.RoleNone, repo.ErrNotFound
	}
	t, ok := s.tasks[c.TaskID]
	if !ok {
		return nil, models.RoleNone, repo.ErrNotFound
	}
	return c, s.roles[t.TodoListID][actor], nil
}

// paginate validates the page request against the full set and slices it.
func paginate[T any](items []T, page models.PageRequest) (*models.PagedResult[T], error) {
	offset, err := repo.Window(page.Page, page.PageSize, len(items))
	if err != nil {
		return nil, err
	}

	end := offset + page.PageSize
	if offset > len(items) {
		offset = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return &models.PagedResult[T]{
		Items:        append([]T{}, items[offset:end]...),
		TotalCount:   len(items),
		ItemsPerPage: page.PageSize,
		CurrentPage:  page.Page,
	}, nil
}

func sortByIDAsc[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
