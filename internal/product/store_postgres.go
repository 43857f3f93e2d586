// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/medora/internal/platform/dberr"
	"github.com/taibuivan/medora/internal/platform/postgres"
)

// Prices are NUMERIC(12,2) in the schema and read back as float8.
const productColumns = `id, name, description, price::float8, stock, category, image, created_at, updated_at`

const (
	queryInsertProduct = `
		INSERT INTO products (id, name, description, price, stock, category, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	queryProductByID   = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	queryProductsByIDs = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::uuid[])`
	queryListProducts  = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	queryUpdateProduct = `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5, category = $6, image = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	queryDeleteProduct = `DELETE FROM products WHERE id = $1`
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Queryer
}

// NewPostgresRepository constructs a PostgreSQL backed catalog.
func NewPostgresRepository(db postgres.Queryer) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) queryer(ctx context.Context) postgres.Queryer {
	return postgres.QueryerFromContext(ctx, repository.db)
}

func (repository *PostgresRepository) Create(ctx context.Context, product *Product) error {
	err := repository.queryer(ctx).QueryRow(ctx, queryInsertProduct,
		product.ID, product.Name, product.Description, product.Price, product.Stock, product.Category, product.Image,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	return dberr.Wrap(err, "create_product")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	return scanProduct(repository.queryer(ctx).QueryRow(ctx, queryProductByID, id))
}

func (repository *PostgresRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error) {
	found := make(map[string]*Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	rows, err := repository.queryer(ctx).Query(ctx, queryProductsByIDs, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "find_products")
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		found[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "find_products")
	}
	return found, nil
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Product, error) {
	rows, err := repository.queryer(ctx).Query(ctx, queryListProducts)
	if err != nil {
		return nil, dberr.Wrap(err, "list_products")
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_products")
	}
	return products, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, product *Product) error {
	err := repository.queryer(ctx).QueryRow(ctx, queryUpdateProduct,
		product.ID, product.Name, product.Description, product.Price, product.Stock, product.Category, product.Image,
	).Scan(&product.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return dberr.Wrap(err, "update_product")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.queryer(ctx).Exec(ctx, queryDeleteProduct, id)
	if err != nil {
		return dberr.Wrap(err, "delete_product")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var product Product
	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock,
		&product.Category, &product.Image, &product.CreatedAt, &product.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "scan_product")
	}
	return &product, nil
}
