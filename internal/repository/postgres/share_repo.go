package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"listTracker/internal/access"
	"listTracker/internal/logger"
	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

// AddShare grants userName a role on the list. Owner-only; a user can hold
// at most one role per list.
func (s *Storage) AddShare(ctx context.Context, actor string, share models.RoleAssignment) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		role, err := listRole(ctx, tx, share.TodoListID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionShareManage); err != nil {
			return err
		}

		var exists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM todo_list_users
				WHERE todo_list_id = $1 AND user_name = $2)`,
			share.TodoListID, share.UserName,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking existing share: %w", err)
		}
		if exists {
			return repo.ErrDuplicateShare
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO todo_list_users (todo_list_id, user_name, role)
			VALUES ($1, $2, $3)`,
			share.TodoListID, share.UserName, share.Role,
		)
		if err != nil {
			logger.Error("Repository: inserting share", err)
			return fmt.Errorf("inserting share: %w", err)
		}

		logger.Info("Repository: collaborator added",
			zap.Int64("list_id", share.TodoListID),
			zap.String("role", string(share.Role)))
		return nil
	})
}

// UpdateShareRole changes an existing collaborator's role, Owner-only.
// Demoting the only Owner is refused: a list with no Owner would be
// unmanageable forever.
func (s *Storage) UpdateShareRole(ctx context.Context, actor string, listID int64, userName string, newRole models.Role) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		role, err := listRole(ctx, tx, listID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionShareManage); err != nil {
			return err
		}

		current, err := shareRole(ctx, tx, listID, userName)
		if err != nil {
			return err
		}

		if current == models.RoleOwner && newRole != models.RoleOwner {
			if err := requireAnotherOwner(ctx, tx, listID, userName); err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx,
			`UPDATE todo_list_users SET role = $1
			WHERE todo_list_id = $2 AND user_name = $3`,
			newRole, listID, userName,
		)
		if err != nil {
			logger.Error("Repository: updating share", err)
			return fmt.Errorf("updating share: %w", err)
		}
		return nil
	})
}

// RemoveShare revokes a collaborator's role, Owner-only, keeping the
// last-Owner invariant.
func (s *Storage) RemoveShare(ctx context.Context, actor string, listID int64, userName string) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		role, err := listRole(ctx, tx, listID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionShareManage); err != nil {
			return err
		}

		current, err := shareRole(ctx, tx, listID, userName)
		if err != nil {
			return err
		}

		if current == models.RoleOwner {
			if err := requireAnotherOwner(ctx, tx, listID, userName); err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx,
			`DELETE FROM todo_list_users
			WHERE todo_list_id = $1 AND user_name = $2`,
			listID, userName,
		)
		if err != nil {
			logger.Error("Repository: removing share", err)
			return fmt.Errorf("removing share: %w", err)
		}
		return nil
	})
}

// ListShares returns the list's role assignments; any role on the list may
// read the membership, only the Owner mutates it.
func (s *Storage) ListShares(ctx context.Context, actor string, listID int64) ([]models.RoleAssignment, error) {
	shares := []models.RoleAssignment{}
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		role, err := listRole(ctx, tx, listID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionShareRead); err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT todo_list_id, user_name, role
			FROM todo_list_users
			WHERE todo_list_id = $1
			ORDER BY user_name`,
			listID,
		)
		if err != nil {
			logger.Error("Repository: querying shares", err)
			return fmt.Errorf("querying shares: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var a models.RoleAssignment
			if err := rows.Scan(&a.TodoListID, &a.UserName, &a.Role); err != nil {
				return fmt.Errorf("scanning share: %w", err)
			}
			shares = append(shares, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return shares, nil
}

func shareRole(ctx context.Context, tx pgx.Tx, listID int64, userName string) (models.Role, error) {
	var role models.Role
	err := tx.QueryRow(ctx,
		`SELECT role FROM todo_list_users
		WHERE todo_list_id = $1 AND user_name = $2`,
		listID, userName,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.RoleNone, repo.ErrNotFound
		}
		return models.RoleNone, fmt.Errorf("resolving share role: %w", err)
	}
	return role, nil
}

func requireAnotherOwner(ctx context.Context, tx pgx.Tx, listID int64, excludeUser string) error {
	var owners int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM todo_list_users
		WHERE todo_list_id = $1 AND role = $2 AND user_name <> $3`,
		listID, models.RoleOwner, excludeUser,
	).Scan(&owners)
	if err != nil {
		return fmt.Errorf("counting owners: %w", err)
	}
	if owners == 0 {
		return repo.ErrLastOwner
	}
	return nil
}
