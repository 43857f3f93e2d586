// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import "context"

// Writer appends activity entries. The log is append-only.
type Writer interface {
	Insert(ctx context.Context, id string, entry Entry) error
}

// Repository is the full activity store.
type Repository interface {
	Writer

	// List returns one page of views, newest first, and the total row count.
	List(ctx context.Context, limit, offset int) ([]*View, int, error)
}
