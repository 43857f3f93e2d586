// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/medora/internal/platform/dberr"
	"github.com/taibuivan/medora/internal/platform/postgres"
	"github.com/taibuivan/medora/internal/platform/sec"
)

const employeeColumns = `id, employee_id, name, email, phone, password_hash, role, profile_image, is_password_changed, created_at, updated_at`

const (
	queryInsertEmployee = `
		INSERT INTO employees (id, employee_id, name, email, phone, password_hash, role, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	queryEmployeeByID    = `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	queryEmployeeByEmail = `SELECT ` + employeeColumns + ` FROM employees WHERE lower(email) = lower($1)`
	queryEmployeeByCode  = `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`
	queryListEmployees   = `SELECT ` + employeeColumns + ` FROM employees ORDER BY employee_id ASC`

	queryUpdateEmployee = `
		UPDATE employees
		SET name = $2, email = $3, phone = $4, profile_image = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	queryUpdateEmployeePassword = `
		UPDATE employees
		SET password_hash = $2, is_password_changed = TRUE, updated_at = now()
		WHERE id = $1`

	queryDeleteEmployee = `DELETE FROM employees WHERE id = $1`

	queryListEmployeeIDs = `SELECT employee_id FROM employees`
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Queryer
}

// NewPostgresRepository constructs a PostgreSQL backed employee store.
func NewPostgresRepository(db postgres.Queryer) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) queryer(ctx context.Context) postgres.Queryer {
	return postgres.QueryerFromContext(ctx, repository.db)
}

// # Writes

func (repository *PostgresRepository) Create(ctx context.Context, employee *Employee) error {
	err := repository.queryer(ctx).QueryRow(ctx, queryInsertEmployee,
		employee.ID, employee.EmployeeID, employee.Name, employee.Email, employee.Phone,
		employee.PasswordHash, string(employee.Role), employee.ProfileImage,
	).Scan(&employee.CreatedAt, &employee.UpdatedAt)
	return dberr.Wrap(err, "create_employee")
}

func (repository *PostgresRepository) Update(ctx context.Context, employee *Employee) error {
	err := repository.queryer(ctx).QueryRow(ctx, queryUpdateEmployee,
		employee.ID, employee.Name, employee.Email, employee.Phone, employee.ProfileImage,
	).Scan(&employee.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return dberr.Wrap(err, "update_employee")
}

func (repository *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := repository.queryer(ctx).Exec(ctx, queryUpdateEmployeePassword, id, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "update_employee_password")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.queryer(ctx).Exec(ctx, queryDeleteEmployee, id)
	if err != nil {
		return dberr.Wrap(err, "delete_employee")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// # Reads

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Employee, error) {
	return repository.findOne(ctx, queryEmployeeByID, id)
}

func (repository *PostgresRepository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return repository.findOne(ctx, queryEmployeeByEmail, email)
}

func (repository *PostgresRepository) FindByEmployeeID(ctx context.Context, code string) (*Employee, error) {
	return repository.findOne(ctx, queryEmployeeByCode, code)
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Employee, error) {
	rows, err := repository.queryer(ctx).Query(ctx, queryListEmployees)
	if err != nil {
		return nil, dberr.Wrap(err, "list_employees")
	}
	defer rows.Close()

	employees := []*Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_employee")
		}
		employees = append(employees, employee)
	}
	return employees, dberr.Wrap(rows.Err(), "list_employees")
}

func (repository *PostgresRepository) ListEmployeeIDs(ctx context.Context) ([]string, error) {
	rows, err := repository.queryer(ctx).Query(ctx, queryListEmployeeIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "list_employee_ids")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return ids, dberr.Wrap(err, "list_employee_ids")
}

func (repository *PostgresRepository) findOne(ctx context.Context, query string, arg string) (*Employee, error) {
	employee, err := scanEmployee(repository.queryer(ctx).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_employee")
	}
	return employee, nil
}

func scanEmployee(row pgx.Row) (*Employee, error) {
	employee := &Employee{}
	var role string
	err := row.Scan(
		&employee.ID, &employee.EmployeeID, &employee.Name, &employee.Email, &employee.Phone,
		&employee.PasswordHash, &role, &employee.ProfileImage, &employee.IsPasswordChanged,
		&employee.CreatedAt, &employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	employee.Role = sec.Role(role)
	return employee, nil
}
