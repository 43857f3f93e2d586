// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/sec"
	"github.com/taibuivan/medora/internal/platform/validate"
	"github.com/taibuivan/medora/pkg/pointer"
	"github.com/taibuivan/medora/pkg/uuid"
)

// # Errors

var (
	ErrNotFound        = apperr.NotFound("Employee")
	ErrInvalidPassword = apperr.ValidationError("Current password is incorrect")
)

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// # Service Layer

// Service orchestrates employee accounts and employee code allocation.
type Service struct {
	repo     Repository
	sequence Sequence
	tx       Transactor
	prefix   string
	logger   *zap.Logger
}

// NewService constructs a new employee [Service]. prefix is the code prefix, e.g. "MD".
func NewService(repo Repository, sequence Sequence, tx Transactor, prefix string, logger *zap.Logger) *Service {
	return &Service{repo: repo, sequence: sequence, tx: tx, prefix: prefix, logger: logger}
}

/*
Create registers a new employee and allocates the next employee code.

The sequence increment and the insert share one transaction; a failed insert
rolls the counter back so codes stay gap-free under normal operation.

Returns:
  - *Employee: persisted employee with EmployeeID set
  - error: validation failure, Conflict on duplicate email
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Employee, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 120)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPhone, input.Phone).MaxLen(FieldPhone, input.Phone, 32)
	validator.MinLen(FieldPassword, input.Password, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	employee := &Employee{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         sec.RoleEmployee,
		ProfileImage: input.ProfileImage,
	}

	err = service.tx.WithinTx(ctx, func(ctx context.Context) error {
		next, err := service.sequence.Next(ctx)
		if err != nil {
			return err
		}
		employee.EmployeeID = FormatEmployeeID(service.prefix, next)
		return service.repo.Create(ctx, employee)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("employee_created",
		zap.String("id", employee.ID),
		zap.String("employee_id", employee.EmployeeID),
	)
	return employee, nil
}

// Get returns one employee by primary key.
func (service *Service) Get(ctx context.Context, id string) (*Employee, error) {
	return service.repo.FindByID(ctx, id)
}

// FindByEmail returns the employee signing in with email.
func (service *Service) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return service.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// List returns every employee.
func (service *Service) List(ctx context.Context) ([]*Employee, error) {
	return service.repo.List(ctx)
}

// Update applies a partial update. Password and role are never touched here.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Employee, error) {
	employee, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		*input.Name = strings.TrimSpace(*input.Name)
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 120)
	}
	if input.Email != nil {
		*input.Email = strings.ToLower(strings.TrimSpace(*input.Email))
		validator.Email(FieldEmail, *input.Email)
	}
	if input.Phone != nil {
		*input.Phone = strings.TrimSpace(*input.Phone)
		validator.Required(FieldPhone, *input.Phone)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	pointer.Apply(&employee.Name, input.Name)
	pointer.Apply(&employee.Email, input.Email)
	pointer.Apply(&employee.Phone, input.Phone)
	pointer.Apply(&employee.ProfileImage, input.ProfileImage)

	if err := service.repo.Update(ctx, employee); err != nil {
		return nil, err
	}

	service.logger.Info("employee_updated", zap.String("id", id))
	return employee, nil
}

// Delete removes an employee. Their tasks cascade.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}
	service.logger.Info("employee_deleted", zap.String("id", id))
	return nil
}

// ChangePassword verifies the current password and stores the new one.
func (service *Service) ChangePassword(ctx context.Context, id string, input ChangePasswordInput) error {
	validator := &validate.Validator{}
	validator.Required("currentPassword", input.CurrentPassword)
	validator.MinLen(FieldNewPassword, input.NewPassword, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	employee, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !sec.CheckPasswordHash(input.CurrentPassword, employee.PasswordHash) {
		return ErrInvalidPassword
	}

	hash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := service.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	service.logger.Info("employee_password_changed", zap.String("id", id))
	return nil
}

// # Lookups for other modules

// Exists reports whether an employee with id exists.
func (service *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := service.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// IDByCode resolves an employee code such as MD-004 to the employee's primary key.
func (service *Service) IDByCode(ctx context.Context, code string) (string, error) {
	employee, err := service.repo.FindByEmployeeID(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", err
	}
	return employee.ID, nil
}

// HighestAllocated returns the largest allocated suffix so the counter can be repaired.
func (service *Service) HighestAllocated(ctx context.Context) (int64, error) {
	ids, err := service.repo.ListEmployeeIDs(ctx)
	if err != nil {
		return 0, err
	}
	return MaxSuffix(ids), nil
}
