// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/medora/internal/platform/dberr"
	"github.com/taibuivan/medora/internal/platform/postgres"
)

const orderColumns = `o.id, o.user_id, o.total_price::float8, o.street, o.city, o.state, o.postal_code, o.country,
		o.latitude, o.longitude, o.payment_method, o.status, o.created_at, o.updated_at`

const (
	queryInsertOrder = `
		INSERT INTO orders (id, user_id, total_price, street, city, state, postal_code, country,
		                    latitude, longitude, payment_method, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	// Items go in one round trip as parallel arrays.
	queryInsertItems = `
		INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity)
		SELECT $1, item.product_id, item.product_name, item.unit_price, item.quantity
		FROM unnest($2::uuid[], $3::text[], $4::numeric[], $5::int[])
		     AS item (product_id, product_name, unit_price, quantity)`

	queryOrderByID      = `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`
	queryOrdersByUser   = `SELECT ` + orderColumns + ` FROM orders o WHERE o.user_id = $1 ORDER BY o.created_at DESC`
	queryListOrderViews = `
		SELECT ` + orderColumns + `,
		       u.id, btrim(u.first_name || ' ' || u.last_name), u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC`

	queryItemsForOrders = `
		SELECT order_id, product_id, product_name, unit_price::float8, quantity
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY product_name`

	queryUpdateOrderStatus = `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`
	queryDeleteOrder       = `DELETE FROM orders WHERE id = $1`
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Queryer
}

// NewPostgresRepository constructs a PostgreSQL backed order store.
func NewPostgresRepository(db postgres.Queryer) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) queryer(ctx context.Context) postgres.Queryer {
	return postgres.QueryerFromContext(ctx, repository.db)
}

func (repository *PostgresRepository) Create(ctx context.Context, order *Order) error {
	queryer := repository.queryer(ctx)

	err := queryer.QueryRow(ctx, queryInsertOrder,
		order.ID, order.UserID, order.TotalPrice,
		order.Address.Street, order.Address.City, order.Address.State, order.Address.PostalCode, order.Address.Country,
		order.Address.Location.Latitude, order.Address.Location.Longitude,
		string(order.PaymentMethod), string(order.Status),
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_order")
	}

	var (
		productIDs = make([]string, len(order.Items))
		names      = make([]string, len(order.Items))
		prices     = make([]float64, len(order.Items))
		quantities = make([]int32, len(order.Items))
	)
	for i, item := range order.Items {
		productIDs[i] = item.ProductID
		names[i] = item.ProductName
		prices[i] = item.UnitPrice
		quantities[i] = int32(item.Quantity)
	}

	_, err = queryer.Exec(ctx, queryInsertItems, order.ID, productIDs, names, prices, quantities)
	return dberr.Wrap(err, "create_order_items")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	order, err := scanOrder(repository.queryer(ctx).QueryRow(ctx, queryOrderByID, id))
	if err != nil {
		return nil, err
	}
	if err := repository.attachItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	rows, err := repository.queryer(ctx).Query(ctx, queryOrdersByUser, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_user_orders")
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_user_orders")
	}

	if err := repository.attachItems(ctx, orders...); err != nil {
		return nil, err
	}
	return orders, nil
}

func (repository *PostgresRepository) ListViews(ctx context.Context) ([]*View, error) {
	rows, err := repository.queryer(ctx).Query(ctx, queryListOrderViews)
	if err != nil {
		return nil, dberr.Wrap(err, "list_orders")
	}
	defer rows.Close()

	views := make([]*View, 0)
	orders := make([]*Order, 0)
	for rows.Next() {
		var (
			view          View
			paymentMethod string
			status        string
		)
		err := rows.Scan(
			&view.ID, &view.UserID, &view.TotalPrice,
			&view.Address.Street, &view.Address.City, &view.Address.State, &view.Address.PostalCode, &view.Address.Country,
			&view.Address.Location.Latitude, &view.Address.Location.Longitude,
			&paymentMethod, &status, &view.CreatedAt, &view.UpdatedAt,
			&view.User.ID, &view.User.Name, &view.User.Email,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_order_view")
		}
		view.PaymentMethod = PaymentMethod(paymentMethod)
		view.Status = Status(status)
		views = append(views, &view)
		orders = append(orders, &view.Order)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_orders")
	}

	if err := repository.attachItems(ctx, orders...); err != nil {
		return nil, err
	}
	return views, nil
}

func (repository *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	tag, err := repository.queryer(ctx).Exec(ctx, queryUpdateOrderStatus, id, string(status))
	if err != nil {
		return nil, dberr.Wrap(err, "update_order_status")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return repository.FindByID(ctx, id)
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.queryer(ctx).Exec(ctx, queryDeleteOrder, id)
	if err != nil {
		return dberr.Wrap(err, "delete_order")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// attachItems loads the items of every order with a single query.
func (repository *PostgresRepository) attachItems(ctx context.Context, orders ...*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[string]*Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		order.Items = make([]Item, 0)
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}

	rows, err := repository.queryer(ctx).Query(ctx, queryItemsForOrders, ids)
	if err != nil {
		return dberr.Wrap(err, "list_order_items")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			item    Item
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			return dberr.Wrap(err, "scan_order_item")
		}
		if order, ok := byID[orderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return dberr.Wrap(rows.Err(), "list_order_items")
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		order         Order
		paymentMethod string
		status        string
	)
	err := row.Scan(
		&order.ID, &order.UserID, &order.TotalPrice,
		&order.Address.Street, &order.Address.City, &order.Address.State, &order.Address.PostalCode, &order.Address.Country,
		&order.Address.Location.Latitude, &order.Address.Location.Longitude,
		&paymentMethod, &status, &order.CreatedAt, &order.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "scan_order")
	}

	order.PaymentMethod = PaymentMethod(paymentMethod)
	order.Status = Status(status)
	return &order, nil
}
