// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"context"

	"github.com/taibuivan/medora/internal/platform/dberr"
	"github.com/taibuivan/medora/internal/platform/postgres"
)

const (
	queryAddLine = `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()`

	querySetQuantity = `
		UPDATE cart_items SET quantity = $3, updated_at = now()
		WHERE user_id = $1 AND product_id = $2`

	queryRemoveLine = `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`
	queryClearCart  = `DELETE FROM cart_items WHERE user_id = $1`

	queryCartLines = `
		SELECT p.id, p.name, p.price::float8, p.image, c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at`
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Queryer
}

// NewPostgresRepository constructs a PostgreSQL backed cart store.
func NewPostgresRepository(db postgres.Queryer) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) queryer(ctx context.Context) postgres.Queryer {
	return postgres.QueryerFromContext(ctx, repository.db)
}

func (repository *PostgresRepository) Add(ctx context.Context, userID, productID string, quantity int) error {
	_, err := repository.queryer(ctx).Exec(ctx, queryAddLine, userID, productID, quantity)
	return dberr.Wrap(err, "add_cart_line")
}

func (repository *PostgresRepository) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	tag, err := repository.queryer(ctx).Exec(ctx, querySetQuantity, userID, productID, quantity)
	if err != nil {
		return dberr.Wrap(err, "set_cart_quantity")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotInCart
	}
	return nil
}

func (repository *PostgresRepository) Remove(ctx context.Context, userID, productID string) error {
	_, err := repository.queryer(ctx).Exec(ctx, queryRemoveLine, userID, productID)
	return dberr.Wrap(err, "remove_cart_line")
}

func (repository *PostgresRepository) Clear(ctx context.Context, userID string) error {
	_, err := repository.queryer(ctx).Exec(ctx, queryClearCart, userID)
	return dberr.Wrap(err, "clear_cart")
}

func (repository *PostgresRepository) Lines(ctx context.Context, userID string) ([]Line, error) {
	rows, err := repository.queryer(ctx).Query(ctx, queryCartLines, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_cart_lines")
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.Product.ID, &line.Product.Name, &line.Product.Price, &line.Product.Image, &line.Quantity); err != nil {
			return nil, dberr.Wrap(err, "scan_cart_line")
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_cart_lines")
	}
	return lines, nil
}
