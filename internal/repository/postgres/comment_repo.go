package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"listTracker/internal/access"
	"listTracker/internal/logger"
	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

// commentWithRole fetches a comment together with the actor's role on the
// list its task belongs to.
func commentWithRole(ctx context.Context, tx pgx.Tx, commentID int64, actor string) (*models.Comment, models.Role, error) {
	query := `SELECT c.id, c.text, c.owner, c.task_id, COALESCE(u.role, '')
			FROM comments c
			JOIN tasks t ON t.id = c.task_id
			LEFT JOIN todo_list_users u
				ON u.todo_list_id = t.todo_list_id AND u.user_name = $2
			WHERE c.id = $1`

	var c models.Comment
	var role models.Role
	err := tx.QueryRow(ctx, query, commentID, actor).Scan(
		&c.ID, &c.Text, &c.Owner, &c.TaskID, &role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.RoleNone, repo.ErrNotFound
		}
		return nil, models.RoleNone, fmt.Errorf("scanning comment: %w", err)
	}
	return &c, role, nil
}

// CreateComment adds a comment to a task, Owner or Editor.
func (s *Storage) CreateComment(ctx context.Context, actor string, comment *models.Comment) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		_, role, err := taskWithRole(ctx, tx, comment.TaskID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionCommentAdd); err != nil {
			return err
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO comments (text, owner, task_id)
			VALUES ($1, $2, $3)
			RETURNING id`,
			comment.Text, comment.Owner, comment.TaskID,
		).Scan(&comment.ID)
		if err != nil {
			logger.Error("Repository: inserting comment", err)
			return fmt.Errorf("inserting comment: %w", err)
		}
		return nil
	})
}

func (s *Storage) ListComments(ctx context.Context, actor string, taskID int64, page models.PageRequest) (*models.PagedResult[models.Comment], error) {
	result := &models.PagedResult[models.Comment]{
		Items:        []models.Comment{},
		ItemsPerPage: page.PageSize,
		CurrentPage:  page.Page,
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		_, role, err := taskWithRole(ctx, tx, taskID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionTaskRead); err != nil {
			return err
		}

		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM comments WHERE task_id = $1`, taskID,
		).Scan(&result.TotalCount)
		if err != nil {
			return fmt.Errorf("counting comments: %w", err)
		}

		offset, err := repo.Window(page.Page, page.PageSize, result.TotalCount)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT id, text, owner, task_id
			FROM comments
			WHERE task_id = $1
			ORDER BY id
			LIMIT $2 OFFSET $3`,
			taskID, page.PageSize, offset,
		)
		if err != nil {
			logger.Error("Repository: querying comments", err)
			return fmt.Errorf("querying comments: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var c models.Comment
			if err := rows.Scan(&c.ID, &c.Text, &c.Owner, &c.TaskID); err != nil {
				return fmt.Errorf("scanning comment: %w", err)
			}
			result.Items = append(result.Items, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateComment edits a comment's text, list-Owner only.
func (s *Storage) UpdateComment(ctx context.Context, actor string, commentID int64, text string) (*models.Comment, error) {
	var comment *models.Comment
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		existing, role, err := commentWithRole(ctx, tx, commentID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionCommentEdit); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE comments SET text = $1 WHERE id = $2`, text, commentID,
		)
		if err != nil {
			logger.Error("Repository: updating comment", err)
			return fmt.Errorf("updating comment: %w", err)
		}

		existing.Text = text
		comment = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Storage) DeleteComment(ctx context.Context, actor string, commentID int64) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		_, role, err := commentWithRole(ctx, tx, commentID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionCommentEdit); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
		if err != nil {
			logger.Error("Repository: deleting comment", err)
			return fmt.Errorf("deleting comment: %w", err)
		}
		return nil
	})
}
