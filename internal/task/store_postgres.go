// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/medora/internal/platform/dberr"
	"github.com/taibuivan/medora/internal/platform/postgres"
)

const taskColumns = `id, title, description, assigned_to, created_by, priority, deadline, status, created_at, updated_at`

const (
	queryInsertTask = `
		INSERT INTO tasks (id, title, description, assigned_to, created_by, priority, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	queryTaskByIDForUpdate = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 FOR UPDATE`

	queryUpdateTask = `
		UPDATE tasks
		SET title = $2, description = $3, assigned_to = $4, priority = $5, deadline = $6, status = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	queryDeleteTask = `DELETE FROM tasks WHERE id = $1`
)

// The creator may be a user (admin) or an employee; both are joined and the first name found wins.
const taskViewSelect = `
		SELECT t.id, t.title, t.description, t.priority, t.deadline, t.status, t.created_at, t.updated_at,
		       e.id, e.name, e.employee_id,
		       t.created_by, COALESCE(NULLIF(btrim(u.first_name || ' ' || u.last_name), ''), ce.name, '')
		FROM tasks t
		JOIN employees e ON e.id = t.assigned_to
		LEFT JOIN users u ON u.id = t.created_by
		LEFT JOIN employees ce ON ce.id = t.created_by`

const (
	queryTaskViewByID            = taskViewSelect + ` WHERE t.id = $1`
	queryListTaskViews           = taskViewSelect + ` ORDER BY t.created_at DESC`
	queryListTaskViewsByAssignee = taskViewSelect + ` WHERE t.assigned_to = $1 ORDER BY t.created_at DESC`
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Queryer
}

// NewPostgresRepository constructs a PostgreSQL backed task store.
func NewPostgresRepository(db postgres.Queryer) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) queryer(ctx context.Context) postgres.Queryer {
	return postgres.QueryerFromContext(ctx, repository.db)
}

// # Writes

func (repository *PostgresRepository) Create(ctx context.Context, task *Task) error {
	err := repository.queryer(ctx).QueryRow(ctx, queryInsertTask,
		task.ID, task.Title, task.Description, task.AssignedTo, task.CreatedBy,
		string(task.Priority), task.Deadline, string(task.Status),
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	return dberr.Wrap(err, "create_task")
}

func (repository *PostgresRepository) Update(ctx context.Context, task *Task) error {
	err := repository.queryer(ctx).QueryRow(ctx, queryUpdateTask,
		task.ID, task.Title, task.Description, task.AssignedTo,
		string(task.Priority), task.Deadline, string(task.Status),
	).Scan(&task.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return dberr.Wrap(err, "update_task")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.queryer(ctx).Exec(ctx, queryDeleteTask, id)
	if err != nil {
		return dberr.Wrap(err, "delete_task")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// # Reads

/*
FindByIDForUpdate reads the task and holds its row lock.

Only meaningful inside [postgres.TxManager.WithinTx]; outside a transaction the
lock is released as soon as the statement completes.
*/
func (repository *PostgresRepository) FindByIDForUpdate(ctx context.Context, id string) (*Task, error) {
	return scanTask(repository.queryer(ctx).QueryRow(ctx, queryTaskByIDForUpdate, id))
}

func (repository *PostgresRepository) FindView(ctx context.Context, id string) (*TaskView, error) {
	return scanTaskView(repository.queryer(ctx).QueryRow(ctx, queryTaskViewByID, id))
}

func (repository *PostgresRepository) ListViews(ctx context.Context) ([]*TaskView, error) {
	return repository.listViews(ctx, queryListTaskViews)
}

func (repository *PostgresRepository) ListViewsByAssignee(ctx context.Context, employeeID string) ([]*TaskView, error) {
	return repository.listViews(ctx, queryListTaskViewsByAssignee, employeeID)
}

func (repository *PostgresRepository) listViews(ctx context.Context, query string, args ...any) ([]*TaskView, error) {
	rows, err := repository.queryer(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tasks")
	}
	defer rows.Close()

	views := make([]*TaskView, 0)
	for rows.Next() {
		view, err := scanTaskView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_tasks")
	}
	return views, nil
}

// # Scanning

func scanTask(row pgx.Row) (*Task, error) {
	var (
		task     Task
		priority string
		status   string
	)
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.AssignedTo, &task.CreatedBy,
		&priority, &task.Deadline, &status, &task.CreatedAt, &task.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "scan_task")
	}
	task.Priority = Priority(priority)
	task.Status = Status(status)
	return &task, nil
}

func scanTaskView(row pgx.Row) (*TaskView, error) {
	var (
		view     TaskView
		priority string
		status   string
	)
	err := row.Scan(
		&view.ID, &view.Title, &view.Description, &priority, &view.Deadline, &status, &view.CreatedAt, &view.UpdatedAt,
		&view.AssignedTo.ID, &view.AssignedTo.Name, &view.AssignedTo.EmployeeID,
		&view.CreatedBy.ID, &view.CreatedBy.Name,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "scan_task_view")
	}
	view.Priority = Priority(priority)
	view.Status = Status(status)
	return &view, nil
}
