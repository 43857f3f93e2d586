// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/validate"
	"github.com/taibuivan/medora/internal/product"
	"github.com/taibuivan/medora/pkg/slice"
	"github.com/taibuivan/medora/pkg/uuid"
)

// # Errors

var (
	ErrNotFound         = apperr.NotFound("Order")
	ErrProductsRequired = apperr.ValidationError("Products are required")
	ErrInvalidStatus    = apperr.ValidationError("Invalid status")
	ErrProductNotFound  = apperr.NotFound("Product")
)

// ProductLookup prices order lines against the catalog.
type ProductLookup interface {
	Lookup(ctx context.Context, ids []string) (map[string]*product.Product, error)
}

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements order placement and administration.
type Service struct {
	repo     Repository
	products ProductLookup
	tx       Transactor
	logger   *zap.Logger
}

// NewService constructs a new order [Service].
func NewService(repo Repository, products ProductLookup, tx Transactor, logger *zap.Logger) *Service {
	return &Service{repo: repo, products: products, tx: tx, logger: logger}
}

/*
Create places an order for userID.

Lines naming the same product are merged. Unit prices and the total are read
from the catalog inside the transaction that inserts the order; the client
never supplies a price.

Returns:
  - *Order: the placed order, status pending
  - error: ErrProductsRequired, ValidationError, NotFound for an unknown product
*/
func (service *Service) Create(ctx context.Context, userID string, input CreateInput) (*Order, error) {
	if len(input.Products) == 0 {
		return nil, ErrProductsRequired
	}

	lines, err := mergeLines(input.Products)
	if err != nil {
		return nil, err
	}

	address := trimAddress(input.Address)
	validator := &validate.Validator{}
	validator.Required(FieldStreet, address.Street)
	validator.Required(FieldCity, address.City)
	validator.Required(FieldState, address.State)
	validator.Required(FieldPostalCode, address.PostalCode)
	validator.Required(FieldCountry, address.Country)
	validator.Custom(FieldPaymentMethod, !input.PaymentMethod.Valid(), "must be one of COD, Card, UPI")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	order := &Order{
		ID:            uuid.New(),
		UserID:        userID,
		Address:       address,
		PaymentMethod: input.PaymentMethod,
		Status:        StatusPending,
	}

	err = service.tx.WithinTx(ctx, func(ctx context.Context) error {
		ids := slice.Map(lines, func(line ItemInput) string { return line.ProductID })

		catalog, err := service.products.Lookup(ctx, ids)
		if err != nil {
			return err
		}

		var totalCents int64
		order.Items = make([]Item, 0, len(lines))
		for _, line := range lines {
			entry, ok := catalog[line.ProductID]
			if !ok {
				return ErrProductNotFound
			}
			totalCents += int64(math.Round(entry.Price*100)) * int64(line.Quantity)
			order.Items = append(order.Items, Item{
				ProductID:   entry.ID,
				ProductName: entry.Name,
				UnitPrice:   entry.Price,
				Quantity:    line.Quantity,
			})
		}
		order.TotalPrice = float64(totalCents) / 100

		return service.repo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("order_placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Float64("total_price", order.TotalPrice),
	)
	return order, nil
}

// List returns every order joined with its customer, newest first.
func (service *Service) List(ctx context.Context) ([]*View, error) {
	return service.repo.ListViews(ctx)
}

// ListForUser returns the caller's orders, newest first.
func (service *Service) ListForUser(ctx context.Context, userID string) ([]*Order, error) {
	return service.repo.ListByUser(ctx, userID)
}

// UpdateStatus validates the label before looking the order up.
func (service *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}

	order, err := service.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	service.logger.Info("order_status_updated", zap.String("order_id", id), zap.String("status", string(status)))
	return order, nil
}

// Delete removes an order and its items.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}
	service.logger.Info("order_deleted", zap.String("order_id", id))
	return nil
}

// mergeLines validates requested lines and folds duplicates, keeping first-seen order.
func mergeLines(requested []ItemInput) ([]ItemInput, error) {
	validator := &validate.Validator{}
	merged := make([]ItemInput, 0, len(requested))
	index := make(map[string]int, len(requested))

	for _, line := range requested {
		line.ProductID = strings.TrimSpace(line.ProductID)
		if !uuid.Valid(line.ProductID) {
			return nil, ErrProductNotFound
		}
		validator.AtLeast(FieldQuantity, line.Quantity, 1)

		if at, seen := index[line.ProductID]; seen {
			merged[at].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return merged, nil
}

func trimAddress(address Address) Address {
	address.Street = strings.TrimSpace(address.Street)
	address.City = strings.TrimSpace(address.City)
	address.State = strings.TrimSpace(address.State)
	address.PostalCode = strings.TrimSpace(address.PostalCode)
	address.Country = strings.TrimSpace(address.Country)
	return address
}
