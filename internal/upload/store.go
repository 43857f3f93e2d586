// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import "context"

// Repository persists image records.
type Repository interface {
	// Create inserts image and fills its CreatedAt.
	Create(ctx context.Context, image *Image) error
}
