// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import "context"

// Repository persists cart lines, one row per (user, product).
type Repository interface {
	// Add inserts the line or increases its quantity atomically.
	Add(ctx context.Context, userID, productID string, quantity int) error

	// SetQuantity returns ErrNotInCart when the line does not exist.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error

	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	Lines(ctx context.Context, userID string) ([]Line, error)
}
