// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/validate"
	"github.com/taibuivan/medora/pkg/uuid"
)

// # Errors

var (
	ErrNotFound         = apperr.NotFound("Task")
	ErrAssigneeNotFound = apperr.NotFound("Assigned employee")
	ErrInvalidStatus    = apperr.ValidationError("Invalid status")
	ErrInvalidPriority  = apperr.ValidationError("Invalid priority")
	ErrInvalidDeadline  = apperr.ValidationError("Invalid deadline")
	ErrCompleted        = apperr.Immutable("Completed tasks cannot be updated")
	ErrNotAssignee      = apperr.Forbidden("Unauthorized to update this task")
)

// EmployeeChecker confirms an assignee exists. The employee service implements it.
type EmployeeChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// # Service Layer

// Service enforces the task lifecycle: who may change a task, and when.
type Service struct {
	repo      Repository
	employees EmployeeChecker
	tx        Transactor
	logger    *zap.Logger
}

// NewService constructs a new task [Service].
func NewService(repo Repository, employees EmployeeChecker, tx Transactor, logger *zap.Logger) *Service {
	return &Service{repo: repo, employees: employees, tx: tx, logger: logger}
}

/*
Create assigns a new task to an employee.

Every field is required. The stored status is always Pending, whatever the
caller submitted.

Parameters:
  - input: CreateInput
  - createdBy: principal id of the admin creating the task

Returns:
  - *Task: the persisted task
  - error: ValidationError, NotFound for an unknown assignee
*/
func (service *Service) Create(ctx context.Context, input CreateInput, createdBy string) (*Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.AssignedTo = strings.TrimSpace(input.AssignedTo)
	input.Deadline = strings.TrimSpace(input.Deadline)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)
	validator.Required(FieldDescription, input.Description)
	validator.Required(FieldAssignedTo, input.AssignedTo)
	validator.Required(FieldPriority, input.Priority)
	validator.Required(FieldDeadline, input.Deadline)
	if err := validator.ErrWithMessage("All fields are required"); err != nil {
		return nil, err
	}

	priority := Priority(input.Priority)
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	deadline, ok := ParseDeadline(input.Deadline)
	if !ok {
		return nil, ErrInvalidDeadline
	}

	if err := service.ensureAssignee(ctx, input.AssignedTo); err != nil {
		return nil, err
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   createdBy,
		Priority:    priority,
		Deadline:    deadline,
		Status:      StatusPending,
	}
	if err := service.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	service.logger.Info("task_created",
		zap.String("task_id", task.ID),
		zap.String("assigned_to", task.AssignedTo),
		zap.String("created_by", createdBy),
	)
	return task, nil
}

/*
UpdateStatus is the employee lifecycle path.

Checks run in a fixed order: the status label, the task's existence, the
terminal state, then ownership. The row is locked for the read-check-write so
two concurrent updates cannot both pass the terminal check.

Returns:
  - *Task: the updated task
  - error: ErrInvalidStatus, ErrNotFound, ErrCompleted or ErrNotAssignee
*/
func (service *Service) UpdateStatus(ctx context.Context, taskID, requesterID, newStatus string) (*Task, error) {
	status := Status(newStatus)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if !uuid.Valid(taskID) {
		return nil, ErrNotFound
	}

	var updated *Task
	err := service.tx.WithinTx(ctx, func(ctx context.Context) error {
		task, err := service.repo.FindByIDForUpdate(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Status.Terminal() {
			return ErrCompleted
		}
		if task.AssignedTo != requesterID {
			return ErrNotAssignee
		}

		task.Status = status
		if err := service.repo.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("task_status_updated",
		zap.String("task_id", taskID),
		zap.String("status", string(status)),
		zap.String("employee_id", requesterID),
	)
	return updated, nil
}

/*
AdminUpdate is the administrator override.

Every field is optional and the terminal-state rule does not apply, so an
admin can reopen or edit a completed task.
*/
func (service *Service) AdminUpdate(ctx context.Context, taskID string, input AdminUpdateInput) (*Task, error) {
	var updated *Task
	err := service.tx.WithinTx(ctx, func(ctx context.Context) error {
		task, err := service.repo.FindByIDForUpdate(ctx, taskID)
		if err != nil {
			return err
		}
		if err := service.applyOverride(ctx, task, input); err != nil {
			return err
		}
		if err := service.repo.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("task_admin_updated", zap.String("task_id", taskID))
	return updated, nil
}

func (service *Service) applyOverride(ctx context.Context, task *Task, input AdminUpdateInput) error {
	validator := &validate.Validator{}
	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
		validator.Required(FieldTitle, task.Title)
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
		validator.Required(FieldDescription, task.Description)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if input.Priority != nil {
		priority := Priority(*input.Priority)
		if !priority.Valid() {
			return ErrInvalidPriority
		}
		task.Priority = priority
	}

	if input.Status != nil {
		status := Status(*input.Status)
		if !status.Valid() {
			return ErrInvalidStatus
		}
		task.Status = status
	}

	if input.Deadline != nil {
		deadline, ok := ParseDeadline(strings.TrimSpace(*input.Deadline))
		if !ok {
			return ErrInvalidDeadline
		}
		task.Deadline = deadline
	}

	if input.AssignedTo != nil {
		assignee := strings.TrimSpace(*input.AssignedTo)
		if err := service.ensureAssignee(ctx, assignee); err != nil {
			return err
		}
		task.AssignedTo = assignee
	}
	return nil
}

// Delete removes a task.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}
	service.logger.Info("task_deleted", zap.String("task_id", id))
	return nil
}

// # Reads

// Get returns one task with its assignee and creator.
func (service *Service) Get(ctx context.Context, id string) (*TaskView, error) {
	return service.repo.FindView(ctx, id)
}

// List returns every task, newest first.
func (service *Service) List(ctx context.Context) ([]*TaskView, error) {
	return service.repo.ListViews(ctx)
}

// ListForAssignee returns the tasks assigned to one employee, newest first.
func (service *Service) ListForAssignee(ctx context.Context, employeeID string) ([]*TaskView, error) {
	return service.repo.ListViewsByAssignee(ctx, employeeID)
}

func (service *Service) ensureAssignee(ctx context.Context, employeeID string) error {
	if !uuid.Valid(employeeID) {
		return ErrAssigneeNotFound
	}
	exists, err := service.employees.Exists(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrAssigneeNotFound
	}
	return nil
}
