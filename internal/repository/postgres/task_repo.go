package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"listTracker/internal/access"
	"listTracker/internal/logger"
	"listTracker/internal/models"
	repo "listTracker/internal/repository"
)

const taskColumns = `t.id, t.title, t.description, t.created_date, t.due_date, t.status, t.owner, t.assigned_to, t.todo_list_id`

func scanTask(row pgx.Row) (*models.Task, models.Role, error) {
	var t models.Task
	var role models.Role
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.CreatedDate,
		&t.DueDate,
		&t.Status,
		&t.Owner,
		&t.AssignedTo,
		&t.TodoListID,
		&role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.RoleNone, repo.ErrNotFound
		}
		return nil, models.RoleNone, fmt.Errorf("scanning task: %w", err)
	}
	return &t, role, nil
}

// taskWithRole fetches a task together with the actor's role on its parent
// list, in one round trip inside the current transaction.
func taskWithRole(ctx context.Context, tx pgx.Tx, taskID int64, actor string) (*models.Task, models.Role, error) {
	query := `SELECT ` + taskColumns + `, COALESCE(u.role, '')
			FROM tasks t
			LEFT JOIN todo_list_users u
				ON u.todo_list_id = t.todo_list_id AND u.user_name = $2
			WHERE t.id = $1`

	return scanTask(tx.QueryRow(ctx, query, taskID, actor))
}

// CreateTask inserts a task under a list. Only the list Owner may create
// tasks; Editors edit existing content but do not add tasks.
func (s *Storage) CreateTask(ctx context.Context, actor string, task *models.Task) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		role, err := listRole(ctx, tx, task.TodoListID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionTaskCreate); err != nil {
			return err
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO tasks (title, description, due_date, status, owner, assigned_to, todo_list_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_date`,
			task.Title, task.Description, task.DueDate, task.Status,
			task.Owner, task.AssignedTo, task.TodoListID,
		).Scan(&task.ID, &task.CreatedDate)
		if err != nil {
			logger.Error("Repository: inserting task", err)
			return fmt.Errorf("inserting task: %w", err)
		}
		return nil
	})
}

func (s *Storage) GetTask(ctx context.Context, actor string, taskID int64) (*models.Task, error) {
	var task *models.Task
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		t, role, err := taskWithRole(ctx, tx, taskID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionTaskRead); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns one page of a list's tasks, newest first.
func (s *Storage) ListTasks(ctx context.Context, actor string, listID int64, page models.PageRequest) (*models.PagedResult[models.Task], error) {
	result := &models.PagedResult[models.Task]{
		Items:        []models.Task{},
		ItemsPerPage: page.PageSize,
		CurrentPage:  page.Page,
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		role, err := listRole(ctx, tx, listID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionTaskRead); err != nil {
			return err
		}

		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM tasks WHERE todo_list_id = $1`, listID,
		).Scan(&result.TotalCount)
		if err != nil {
			return fmt.Errorf("counting tasks: %w", err)
		}

		offset, err := repo.Window(page.Page, page.PageSize, result.TotalCount)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT `+taskColumns+`, '' FROM tasks t
			WHERE t.todo_list_id = $1
			ORDER BY t.created_date DESC, t.id DESC
			LIMIT $2 OFFSET $3`,
			listID, page.PageSize, offset,
		)
		if err != nil {
			logger.Error("Repository: querying tasks", err)
			return fmt.Errorf("querying tasks: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			t, _, err := scanTask(rows)
			if err != nil {
				return err
			}
			result.Items = append(result.Items, *t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateTask applies a full edit, Owner-only. Merge rules: a nil DueDate in
// the update keeps the stored one; an empty AssignedTo defaults to the
// updating owner. Fields are named explicitly in the UPDATE so nothing else
// can be clobbered.
func (s *Storage) UpdateTask(ctx context.Context, actor string, taskID int64, upd models.TaskUpdate) (*models.Task, error) {
	var task *models.Task
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		existing, role, err := taskWithRole(ctx, tx, taskID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionTaskUpdate); err != nil {
			return err
		}

		dueDate := upd.DueDate
		if dueDate == nil {
			dueDate = existing.DueDate
		}
		assignedTo := upd.AssignedTo
		if assignedTo == "" {
			assignedTo = actor
		}

		_, err = tx.Exec(ctx,
			`UPDATE tasks
			SET title = $1,
				description = $2,
				status = $3,
				due_date = $4,
				assigned_to = $5
			WHERE id = $6`,
			upd.Title, upd.Description, upd.Status, dueDate, assignedTo, taskID,
		)
		if err != nil {
			logger.Error("Repository: updating task", err)
			return fmt.Errorf("updating task: %w", err)
		}

		existing.Title = upd.Title
		existing.Description = upd.Description
		existing.Status = upd.Status
		existing.DueDate = dueDate
		existing.AssignedTo = assignedTo
		task = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTaskStatus is the assignee-only transition path: it works for the
// current assignee even without a role on the list, and for nobody else.
func (s *Storage) UpdateTaskStatus(ctx context.Context, actor string, taskID int64, status models.Status) (*models.Task, error) {
	var task *models.Task
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		existing, role, err := taskWithRole(ctx, tx, taskID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireAssignee(actor, existing.AssignedTo, role); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE tasks SET status = $1 WHERE id = $2`, status, taskID,
		)
		if err != nil {
			logger.Error("Repository: updating task status", err)
			return fmt.Errorf("updating task status: %w", err)
		}

		existing.Status = status
		task = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Storage) DeleteTask(ctx context.Context, actor string, taskID int64) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		_, role, err := taskWithRole(ctx, tx, taskID, actor)
		if err != nil {
			return err
		}
		if err := repo.RequireRole(actor, role, access.ActionTaskDelete); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
		if err != nil {
			logger.Error("Repository: deleting task", err)
			return fmt.Errorf("deleting task: %w", err)
		}

		logger.Info("Repository: task deleted", zap.Int64("task_id", taskID))
		return nil
	})
}

// ListAssigned returns one page of the tasks assigned to the actor. The
// default status filter hides Completed tasks.
func (s *Storage) ListAssigned(ctx context.Context, actor string, filter repo.AssignedFilter, page models.PageRequest) (*models.PagedResult[models.Task], error) {
	if actor == "" {
		return nil, repo.ErrForbidden
	}

	conds := []string{"t.assigned_to = $1"}
	args := []any{actor}

	switch filter.Filter {
	case repo.StatusFilterDefault:
		conds = append(conds, fmt.Sprintf("t.status <> $%d", len(args)+1))
		args = append(args, models.StatusCompleted)
	case repo.StatusFilterExact:
		conds = append(conds, fmt.Sprintf("t.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	order := "t.created_date DESC, t.id DESC"
	switch filter.Sort {
	case repo.SortTitle:
		order = "t.title ASC, t.id"
	case repo.SortDueDate:
		order = "t.due_date ASC NULLS LAST, t.id"
	}

	where := strings.Join(conds, " AND ")
	return s.pagedTasks(ctx, where, order, args, page)
}

// SearchTasks matches tasks across every list the actor holds a role on.
func (s *Storage) SearchTasks(ctx context.Context, actor string, q repo.SearchQuery, page models.PageRequest) (*models.PagedResult[models.Task], error) {
	if actor == "" {
		return nil, repo.ErrForbidden
	}

	conds := []string{
		`EXISTS (SELECT 1 FROM todo_list_users u
			WHERE u.todo_list_id = t.todo_list_id AND u.user_name = $1)`,
	}
	args := []any{actor}

	if q.Title != "" {
		conds = append(conds, fmt.Sprintf("t.title LIKE '%%' || $%d || '%%'", len(args)+1))
		args = append(args, q.Title)
	}
	if q.CreationDate != nil {
		conds = append(conds, fmt.Sprintf("t.created_date::date = $%d::date", len(args)+1))
		args = append(args, *q.CreationDate)
	}
	if q.DueDate != nil {
		conds = append(conds, fmt.Sprintf("t.due_date::date = $%d::date", len(args)+1))
		args = append(args, *q.DueDate)
	}
	if q.Tag != "" {
		conds = append(conds, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM task_tags tt JOIN tags g ON g.id = tt.tag_id
				WHERE tt.task_id = t.id AND g.label = $%d)`, len(args)+1))
		args = append(args, q.Tag)
	}

	where := strings.Join(conds, " AND ")
	return s.pagedTasks(ctx, where, "t.created_date DESC, t.id DESC", args, page)
}

func (s *Storage) pagedTasks(ctx context.Context, where, order string, args []any, page models.PageRequest) (*models.PagedResult[models.Task], error) {
	result := &models.PagedResult[models.Task]{
		Items:        []models.Task{},
		ItemsPerPage: page.PageSize,
		CurrentPage:  page.Page,
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM tasks t WHERE `+where, args...,
		).Scan(&result.TotalCount)
		if err != nil {
			return fmt.Errorf("counting tasks: %w", err)
		}

		offset, err := repo.Window(page.Page, page.PageSize, result.TotalCount)
		if err != nil {
			return err
		}

		query := fmt.Sprintf(
			`SELECT %s, '' FROM tasks t WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
			taskColumns, where, order, len(args)+1, len(args)+2,
		)
		rows, err := tx.Query(ctx, query, append(args, page.PageSize, offset)...)
		if err != nil {
			logger.Error("Repository: querying tasks", err)
			return fmt.Errorf("querying tasks: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			t, _, err := scanTask(rows)
			if err != nil {
				return err
			}
			result.Items = append(result.Items, *t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
