package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"listTracker/internal/access"
	"listTracker/internal/logger"
	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

// CreateList inserts the list and its creator's Owner role row in one
// transaction.
func (s *Storage) CreateList(ctx context.Context, actor string, list *models.TodoList) error {
	if d := access.Authorize(actor, models.RoleNone, access.ActionListCreate); !d.Allowed {
		return repo.ErrForbidden
	}

	return s.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO todo_lists (title, description)
			VALUES ($1, $2)
			RETURNING id`,
			list.Title, list.Description,
		).Scan(&list.ID)
		if err != nil {
			logger.Error("Repository: inserting list", err)
			return fmt.Errorf("inserting list: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO todo_list_users (todo_list_id, user_name, role)
			VALUES ($1, $2, $3)`,
			list.ID, actor, models.RoleOwner,
		)
		if err != nil {
			logger.Error("Repository: inserting owner role", err)
			return fmt.Errorf("inserting owner role: %w", err)
		}
		return nil
	})
}

func (s *Storage) GetList(ctx context.Context, actor string, listID int64) (*models.TodoList, error) {
	var list models.TodoList
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		role, err := listRole(ctx, tx, listID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionListRead); err != nil {
			return err
		}

		return tx.QueryRow(ctx,
			`SELECT id, title, description FROM todo_lists WHERE id = $1`,
			listID,
		).Scan(&list.ID, &list.Title, &list.Description)
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ListLists returns one page of the lists the actor holds any role on,
// ordered by id.
func (s *Storage) ListLists(ctx context.Context, actor string, page models.PageRequest) (*models.PagedResult[models.TodoList], error) {
	if actor == "" {
		return nil, repo.ErrForbidden
	}

	result := &models.PagedResult[models.TodoList]{
		Items:        []models.TodoList{},
		ItemsPerPage: page.PageSize,
		CurrentPage:  page.Page,
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*)
			FROM todo_lists l
			JOIN todo_list_users u ON u.todo_list_id = l.id
			WHERE u.user_name = $1`,
			actor,
		).Scan(&result.TotalCount)
		if err != nil {
			return fmt.Errorf("counting lists: %w", err)
		}

		offset, err := repo.Window(page.Page, page.PageSize, result.TotalCount)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT l.id, l.title, l.description
			FROM todo_lists l
			JOIN todo_list_users u ON u.todo_list_id = l.id
			WHERE u.user_name = $1
			ORDER BY l.id
			LIMIT $2 OFFSET $3`,
			actor, page.PageSize, offset,
		)
		if err != nil {
			logger.Error("Repository: querying lists", err)
			return fmt.Errorf("querying lists: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var l models.TodoList
			if err := rows.Scan(&l.ID, &l.Title, &l.Description); err != nil {
				return fmt.Errorf("scanning list: %w", err)
			}
			result.Items = append(result.Items, l)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Storage) UpdateList(ctx context.Context, actor string, listID int64, title, description string) (*models.TodoList, error) {
	updated := models.TodoList{ID: listID, Title: title, Description: description}
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		role, err := listRole(ctx, tx, listID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionListUpdate); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE todo_lists SET title = $1, description = $2 WHERE id = $3`,
			title, description, listID,
		)
		if err != nil {
			logger.Error("Repository: updating list", err)
			return fmt.Errorf("updating list: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteList removes the list; tasks, comments, tag associations and role
// rows go with it via the schema's ON DELETE CASCADE chain. Tag rows stay.
func (s *Storage) DeleteList(ctx context.Context, actor string, listID int64) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		role, err := listRole(ctx, tx, listID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionListDelete); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM todo_lists WHERE id = $1`, listID)
		if err != nil {
			logger.Error("Repository: deleting list", err)
			return fmt.Errorf("deleting list: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return repo.ErrNotFound
		}

		logger.Info("Repository: list deleted", zap.Int64("list_id", listID))
		return nil
	})
}
