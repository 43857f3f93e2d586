// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import (
	"context"

	"github.com/taibuivan/medora/internal/platform/dberr"
	"github.com/taibuivan/medora/internal/platform/postgres"
)

const queryInsertImage = `
	INSERT INTO images (id, image_url, type, uploaded_by)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Queryer
}

// NewPostgresRepository constructs a PostgreSQL backed image store.
func NewPostgresRepository(db postgres.Queryer) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(ctx context.Context, image *Image) error {
	err := postgres.QueryerFromContext(ctx, repository.db).
		QueryRow(ctx, queryInsertImage, image.ID, image.ImageURL, string(image.Type), image.UploadedBy).
		Scan(&image.CreatedAt)
	return dberr.Wrap(err, "create_image")
}
