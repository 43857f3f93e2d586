// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import "context"

// Repository defines persistence operations for user accounts.
type Repository interface {
	// Create inserts the user. A taken email yields a Conflict.
	Create(ctx context.Context, user *User) error

	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*User, error)

	List(ctx context.Context) ([]*User, error)

	// Update persists the mutable profile fields.
	Update(ctx context.Context, user *User) error
}
