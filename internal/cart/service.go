// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/validate"
	"github.com/taibuivan/medora/pkg/uuid"
)

// # Errors

var (
	ErrEmpty           = apperr.NotFoundMessage("Cart is empty")
	ErrNotInCart       = apperr.NotFoundMessage("Product not in cart")
	ErrProductNotFound = apperr.NotFound("Product")
)

// ProductChecker reports whether a product exists in the catalog.
type ProductChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service implements cart use cases for the authenticated caller.
type Service struct {
	repo     Repository
	products ProductChecker
	logger   *zap.Logger
}

// NewService constructs a new cart [Service].
func NewService(repo Repository, products ProductChecker, logger *zap.Logger) *Service {
	return &Service{repo: repo, products: products, logger: logger}
}

/*
Add puts quantity units of a product in the caller's cart.

Concurrent adds of the same product accumulate; the store increments in a
single statement.

Returns:
  - *Cart: the cart after the change
  - error: ValidationError, NotFound when the product does not exist
*/
func (service *Service) Add(ctx context.Context, userID string, input AddInput) (*Cart, error) {
	input.ProductID = strings.TrimSpace(input.ProductID)

	validator := &validate.Validator{}
	validator.Required(FieldProductID, input.ProductID)
	validator.AtLeast(FieldQuantity, input.Quantity, 1)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.products.Exists(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	if err := service.repo.Add(ctx, userID, input.ProductID, input.Quantity); err != nil {
		return nil, err
	}

	service.logger.Debug("cart_line_added",
		zap.String("user_id", userID),
		zap.String("product_id", input.ProductID),
		zap.Int("quantity", input.Quantity),
	)
	return service.load(ctx, userID)
}

// Get returns the caller's cart, or ErrEmpty when it has no lines.
func (service *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	cart, err := service.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmpty
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of a line already in the cart.
func (service *Service) UpdateQuantity(ctx context.Context, userID, productID string, input UpdateInput) (*Cart, error) {
	validator := &validate.Validator{}
	validator.AtLeast(FieldQuantity, input.Quantity, 1)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	if !uuid.Valid(productID) {
		return nil, ErrNotInCart
	}

	if err := service.repo.SetQuantity(ctx, userID, productID, input.Quantity); err != nil {
		return nil, err
	}
	return service.load(ctx, userID)
}

// Remove drops a product from the cart. Removing an absent product is not an error.
func (service *Service) Remove(ctx context.Context, userID, productID string) (*Cart, error) {
	if uuid.Valid(productID) {
		if err := service.repo.Remove(ctx, userID, productID); err != nil {
			return nil, err
		}
	}
	return service.load(ctx, userID)
}

// Clear empties the cart.
func (service *Service) Clear(ctx context.Context, userID string) error {
	return service.repo.Clear(ctx, userID)
}

func (service *Service) load(ctx context.Context, userID string) (*Cart, error) {
	lines, err := service.repo.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newCart(userID, lines), nil
}
