// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/postgres"
	"github.com/taibuivan/medora/pkg/pointer"
)

const (
	adminID    = "0190c8e4-0000-7000-8000-00000000a001"
	assigneeID = "0190c8e4-0000-7000-8000-00000000e001"
	otherID    = "0190c8e4-0000-7000-8000-00000000e002"
	missingID  = "0190c8e4-0000-7000-8000-00000000ffff"
)

func newTestService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	employees := stubEmployees{assigneeID: true, otherID: true}
	return NewService(repo, employees, postgres.NoTx{}, zap.NewNop()), repo
}

func validCreate() CreateInput {
	return CreateInput{
		Title:       "Restock shelf B",
		Description: "Move the new paracetamol boxes to shelf B",
		AssignedTo:  assigneeID,
		Priority:    "High",
		Deadline:    "2026-06-30",
	}
}

func createTask(t *testing.T, service *Service) *Task {
	t.Helper()
	task, err := service.Create(context.Background(), validCreate(), adminID)
	require.NoError(t, err)
	return task
}

// # Create

/*
TestCreate_ForcesPending verifies a submitted status never reaches the store.
*/
func TestCreate_ForcesPending(t *testing.T) {
	service, repo := newTestService()

	input := validCreate()
	input.Status = "Completed"
	task, err := service.Create(context.Background(), input, adminID)

	require.NoError(t, err)
	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, adminID, task.CreatedBy)
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), task.Deadline)

	stored, err := repo.FindByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
}

func TestCreate_Validation(t *testing.T) {
	service, _ := newTestService()

	tests := []struct {
		name    string
		mutate  func(*CreateInput)
		wantErr *apperr.AppError
		message string
	}{
		{"missing_title", func(in *CreateInput) { in.Title = "  " }, nil, "All fields are required"},
		{"missing_deadline", func(in *CreateInput) { in.Deadline = "" }, nil, "All fields are required"},
		{"bad_priority", func(in *CreateInput) { in.Priority = "Urgent" }, ErrInvalidPriority, ""},
		{"lowercase_priority", func(in *CreateInput) { in.Priority = "high" }, ErrInvalidPriority, ""},
		{"bad_deadline", func(in *CreateInput) { in.Deadline = "next friday" }, ErrInvalidDeadline, ""},
		{"unknown_assignee", func(in *CreateInput) { in.AssignedTo = missingID }, ErrAssigneeNotFound, ""},
		{"malformed_assignee", func(in *CreateInput) { in.AssignedTo = "emp-1" }, ErrAssigneeNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreate()
			tt.mutate(&input)

			_, err := service.Create(context.Background(), input, adminID)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, tt.message, ae.Message)
		})
	}
}

func TestCreate_EmptyInputListsEveryField(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), CreateInput{}, adminID)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 5)
}

func TestCreate_AssigneeMessage(t *testing.T) {
	service, _ := newTestService()

	input := validCreate()
	input.AssignedTo = missingID
	_, err := service.Create(context.Background(), input, adminID)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Assigned employee not found", ae.Message)
}

func TestParseDeadline(t *testing.T) {
	deadline, ok := ParseDeadline("2026-06-30T17:00:00+07:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 6, 30, 10, 0, 0, 0, time.UTC), deadline)

	_, ok = ParseDeadline("30/06/2026")
	assert.False(t, ok)
}

// # Employee Lifecycle

/*
TestUpdateStatus_CheckOrder verifies which error wins when several checks would fail.
*/
func TestUpdateStatus_CheckOrder(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	pending := createTask(t, service)
	completed := createTask(t, service)
	completed.Status = StatusCompleted
	require.NoError(t, repo.Update(ctx, completed))

	tests := []struct {
		name      string
		taskID    string
		requester string
		status    string
		wantErr   *apperr.AppError
	}{
		{"bad_label_before_missing_task", missingID, otherID, "Done", ErrInvalidStatus},
		{"bad_label_on_completed_task", completed.ID, otherID, "pending", ErrInvalidStatus},
		{"missing_task", missingID, assigneeID, "Pending", ErrNotFound},
		{"malformed_task_id", "not-a-uuid", assigneeID, "Pending", ErrNotFound},
		{"completed_before_ownership", completed.ID, otherID, "Pending", ErrCompleted},
		{"not_assignee", pending.ID, otherID, "In Progress", ErrNotAssignee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.UpdateStatus(ctx, tt.taskID, tt.requester, tt.status)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

/*
TestUpdateStatus_CompletedIsImmutable verifies every target value is rejected once completed.
*/
func TestUpdateStatus_CompletedIsImmutable(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	task := createTask(t, service)
	_, err := service.UpdateStatus(ctx, task.ID, assigneeID, string(StatusCompleted))
	require.NoError(t, err)

	for _, target := range []Status{StatusPending, StatusInProgress, StatusCompleted} {
		t.Run(string(target), func(t *testing.T) {
			_, err := service.UpdateStatus(ctx, task.ID, assigneeID, string(target))

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "IMMUTABLE", ae.Code)
			assert.Equal(t, 400, ae.HTTPStatus)
		})
	}
}

func TestUpdateStatus_FreeMovementBeforeCompletion(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	task := createTask(t, service)

	for _, target := range []Status{StatusInProgress, StatusPending, StatusInProgress, StatusCompleted} {
		updated, err := service.UpdateStatus(ctx, task.ID, assigneeID, string(target))
		require.NoError(t, err)
		assert.Equal(t, target, updated.Status)
	}
}

// # Admin Override

/*
TestAdminUpdate_IgnoresTerminalState verifies the override path can edit and reopen completed tasks.
*/
func TestAdminUpdate_IgnoresTerminalState(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	task := createTask(t, service)
	_, err := service.UpdateStatus(ctx, task.ID, assigneeID, string(StatusCompleted))
	require.NoError(t, err)

	updated, err := service.AdminUpdate(ctx, task.ID, AdminUpdateInput{
		Title:      pointer.To("Restock shelf C"),
		AssignedTo: pointer.To(otherID),
		Status:     pointer.To(string(StatusPending)),
	})

	require.NoError(t, err)
	assert.Equal(t, "Restock shelf C", updated.Title)
	assert.Equal(t, otherID, updated.AssignedTo)
	assert.Equal(t, StatusPending, updated.Status)
	assert.Equal(t, PriorityHigh, updated.Priority)
}

func TestAdminUpdate_Validation(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	task := createTask(t, service)

	_, err := service.AdminUpdate(ctx, task.ID, AdminUpdateInput{AssignedTo: pointer.To(missingID)})
	assert.ErrorIs(t, err, ErrAssigneeNotFound)

	_, err = service.AdminUpdate(ctx, task.ID, AdminUpdateInput{Status: pointer.To("Archived")})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = service.AdminUpdate(ctx, task.ID, AdminUpdateInput{Priority: pointer.To("Critical")})
	assert.ErrorIs(t, err, ErrInvalidPriority)

	_, err = service.AdminUpdate(ctx, task.ID, AdminUpdateInput{Title: pointer.To("")})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	_, err = service.AdminUpdate(ctx, missingID, AdminUpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

// # Reads & Delete

func TestListForAssignee_NewestFirst(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	first := createTask(t, service)
	second := createTask(t, service)
	other := validCreate()
	other.AssignedTo = otherID
	_, err := service.Create(ctx, other, adminID)
	require.NoError(t, err)

	views, err := service.ListForAssignee(ctx, assigneeID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second.ID, views[0].ID)
	assert.Equal(t, first.ID, views[1].ID)

	all, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDelete(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	task := createTask(t, service)

	require.NoError(t, service.Delete(ctx, task.ID))
	assert.ErrorIs(t, service.Delete(ctx, task.ID), ErrNotFound)

	_, err := service.Get(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
