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

// AttachTag attaches a tag to a task, Owner or Editor. Labels are global:
// an existing tag with the same label is reused instead of duplicated. The
// existence check and the insert share one transaction so a concurrent
// attach cannot slip between them.
func (s *Storage) AttachTag(ctx context.Context, actor string, taskID int64, label string) (*models.Tag, error) {
	tag := &models.Tag{Label: label}
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		_, role, err := taskWithRole(ctx, tx, taskID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionTagAttach); err != nil {
			return err
		}

		err = tx.QueryRow(ctx,
			`SELECT id FROM tags WHERE label = $1`, label,
		).Scan(&tag.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			err = tx.QueryRow(ctx,
				`INSERT INTO tags (label) VALUES ($1) RETURNING id`, label,
			).Scan(&tag.ID)
		}
		if err != nil {
			logger.Error("Repository: resolving tag", err)
			return fmt.Errorf("resolving tag: %w", err)
		}

		var attached bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM task_tags WHERE task_id = $1 AND tag_id = $2)`,
			taskID, tag.ID,
		).Scan(&attached)
		if err != nil {
			return fmt.Errorf("checking tag association: %w", err)
		}
		if attached {
			return repo.ErrDuplicateTag
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO task_tags (task_id, tag_id) VALUES ($1, $2)`,
			taskID, tag.ID,
		)
		if err != nil {
			logger.Error("Repository: attaching tag", err)
			return fmt.Errorf("attaching tag: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// DetachTag removes only the task↔tag association. The tag row and its
// associations with other tasks are untouched.
func (s *Storage) DetachTag(ctx context.Context, actor string, taskID, tagID int64) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		_, role, err := taskWithRole(ctx, tx, taskID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionTagDetach); err != nil {
			return err
		}

		ct, err := tx.Exec(ctx,
			`DELETE FROM task_tags WHERE task_id = $1 AND tag_id = $2`,
			taskID, tagID,
		)
		if err != nil {
			logger.Error("Repository: detaching tag", err)
			return fmt.Errorf("detaching tag: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return repo.ErrNotFound
		}

		logger.Info("Repository: tag detached",
			zap.Int64("task_id", taskID), zap.Int64("tag_id", tagID))
		return nil
	})
}

func (s *Storage) ListTags(ctx context.Context, actor string, taskID int64) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		_, role, err := taskWithRole(ctx, tx, taskID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionTaskRead); err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT g.id, g.label
			FROM tags g
			JOIN task_tags tt ON tt.tag_id = g.id
			WHERE tt.task_id = $1
			ORDER BY g.label`,
			taskID,
		)
		if err != nil {
			logger.Error("Repository: querying tags", err)
			return fmt.Errorf("querying tags: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var t models.Tag
			if err := rows.Scan(&t.ID, &t.Label); err != nil {
				return fmt.Errorf("scanning tag: %w", err)
			}
			tags = append(tags, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}
