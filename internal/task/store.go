// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import "context"

// Repository defines persistence operations for tasks.
type Repository interface {
	Create(ctx context.Context, task *Task) error

	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	// It returns [ErrNotFound] when the task is absent.
	FindByIDForUpdate(ctx context.Context, id string) (*Task, error)

	// Update persists every mutable field and refreshes UpdatedAt.
	Update(ctx context.Context, task *Task) error

	Delete(ctx context.Context, id string) error

	// ## Projections

	FindView(ctx context.Context, id string) (*TaskView, error)
	ListViews(ctx context.Context) ([]*TaskView, error)
	ListViewsByAssignee(ctx context.Context, employeeID string) ([]*TaskView, error)
}
