package inmemory

import (
	"context"
	"sort"

	"listTracker/internal/access"
	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

func (s *Store) AddShare(ctx context.Context, actor string, share models.RoleAssignment) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	role, err := s.roleOn(share.TodoListID, actor)
	if err != nil {
		return err
	}
	if err := repo.RequireRole(actor, role, access.ActionShareManage); err != nil {
		return err
	}

	if s.roles[share.TodoListID][share.UserName] != models.RoleNone {
		return repo.ErrDuplicateShare
	}
	s.roles[share.TodoListID][share.UserName] = share.Role
	return nil
}

func (s *Store) UpdateShareRole(ctx context.Context, actor string, listID int64, userName string, newRole models.Role) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	role, err := s.roleOn(listID, actor)
	if err != nil {
		return err
	}
	if err := repo.RequireRole(actor, role, access.ActionShareManage); err != nil {
		return err
	}

	current := s.roles[listID][userName]
	if current == models.RoleNone {
		return repo.ErrNotFound
	}
	if current == models.RoleOwner && newRole != models.RoleOwner && s.ownerCount(listID, userName) == 0 {
		return repo.ErrLastOwner
	}

	s.roles[listID][userName] = newRole
	return nil
}

func (s *Store) RemoveShare(ctx context.Context, actor string, listID int64, userName string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	role, err := s.roleOn(listID, actor)
	if err != nil {
		return err
	}
	if err := repo.RequireRole(actor, role, access.ActionShareManage); err != nil {
		return err
	}

	current := s.roles[listID][userName]
	if current == models.RoleNone {
		return repo.ErrNotFound
	}
	if current == models.RoleOwner && s.ownerCount(listID, userName) == 0 {
		return repo.ErrLastOwner
	}

	delete(s.roles[listID], userName)
	return nil
}

func (s *Store) ListShares(ctx context.Context, actor string, listID int64) ([]models.RoleAssignment, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	role, err := s.roleOn(listID, actor)
	if err != nil {
		return nil, err
	}
	if err := repo.RequireRole(actor, role, access.ActionShareRead); err != nil {
		return nil, err
	}

	shares := []models.RoleAssignment{}
	for user, r := range s.roles[listID] {
		shares = append(shares, models.RoleAssignment{
			TodoListID: listID,
			UserName:   user,
			Role:       r,
		})
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].UserName < shares[j].UserName })
	return shares, nil
}

// ownerCount counts Owner rows on a list excluding one user. Callers hold
// the lock.
func (s *Store) ownerCount(listID int64, excludeUser string) int {
	count := 0
	for user, r := range s.roles[listID] {
		if user != excludeUser && r == models.RoleOwner {
			count++
		}
	}
	return count
}
