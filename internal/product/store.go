// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import "context"

// Repository defines persistence operations for the catalog.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDs returns the products that exist among ids, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error)

	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
}
