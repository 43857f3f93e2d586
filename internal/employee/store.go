// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

import "context"

// # Employee Data Access

// Repository defines the data access contract for employees.
//
// Lookups return [ErrNotFound] when no row matches.
type Repository interface {

	// Create inserts employee. EmployeeID must already be allocated.
	Create(ctx context.Context, employee *Employee) error

	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)

	// FindByEmployeeID resolves a human-facing code such as MD-007.
	FindByEmployeeID(ctx context.Context, code string) (*Employee, error)

	// List returns every employee ordered by code.
	List(ctx context.Context) ([]*Employee, error)

	// Update writes name, email, phone and profile image.
	Update(ctx context.Context, employee *Employee) error

	// UpdatePassword stores a new hash and marks the password as changed.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	Delete(ctx context.Context, id string) error

	// ListEmployeeIDs returns every allocated code. Used to resync the sequence.
	ListEmployeeIDs(ctx context.Context) ([]string, error)
}
