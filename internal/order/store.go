// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import "context"

// Repository defines persistence operations for orders.
type Repository interface {
	// Create inserts the order and its items. Call it inside a transaction.
	Create(ctx context.Context, order *Order) error

	FindByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	ListViews(ctx context.Context) ([]*View, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	Delete(ctx context.Context, id string) error
}
