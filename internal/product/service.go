// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/cache"
	"github.com/taibuivan/medora/internal/platform/constants"
	"github.com/taibuivan/medora/internal/platform/validate"
	"github.com/taibuivan/medora/pkg/pointer"
	"github.com/taibuivan/medora/pkg/uuid"
)

// # Errors

var (
	ErrNotFound = apperr.NotFound("Product")
)

// ImageRemover deletes files that are no longer referenced by a product.
type ImageRemover interface {
	Remove(publicPath string)
}

// # Service Layer

// Service manages the catalog. Public reads are served through a Redis read-through cache.
type Service struct {
	repo     Repository
	cache    *cache.Cache
	cacheTTL time.Duration
	images   ImageRemover
	logger   *zap.Logger
}

// NewService constructs a new product [Service].
func NewService(repo Repository, productCache *cache.Cache, cacheTTL time.Duration, images ImageRemover, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    productCache,
		cacheTTL: cacheTTL,
		images:   images,
		logger:   logger,
	}
}

/*
Create adds a product to the catalog.

Returns:
  - *Product: the persisted product
  - error: ValidationError when name or price are missing or negative
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	validator.Custom(FieldPrice, input.Price == nil, "is required")
	if input.Price != nil {
		validator.NonNegative(FieldPrice, *input.Price)
	}
	validator.NonNegative(FieldStock, float64(input.Stock))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	product := &Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		Price:       *input.Price,
		Stock:       input.Stock,
		Category:    strings.TrimSpace(input.Category),
		Image:       input.Image,
	}
	if err := service.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	service.invalidate(ctx)
	service.logger.Info("product_created", zap.String("product_id", product.ID))
	return product, nil
}

// List returns the catalog, newest first.
func (service *Service) List(ctx context.Context) ([]*Product, error) {
	return cache.GetOrLoadJSON(ctx, service.cache, constants.RedisKeyProductList, service.cacheTTL, service.repo.List)
}

// Get returns one product. Malformed ids are reported as not found.
func (service *Service) Get(ctx context.Context, id string) (*Product, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}
	return cache.GetOrLoadJSON(ctx, service.cache, constants.RedisPrefixProduct+id, service.cacheTTL,
		func(ctx context.Context) (*Product, error) {
			return service.repo.FindByID(ctx, id)
		})
}

// Lookup reads products straight from the database, bypassing the cache.
// Orders price against it so a stale cache entry never sets a total.
func (service *Service) Lookup(ctx context.Context, ids []string) (map[string]*Product, error) {
	return service.repo.FindByIDs(ctx, ids)
}

// Exists reports whether id names a product.
func (service *Service) Exists(ctx context.Context, id string) (bool, error) {
	if !uuid.Valid(id) {
		return false, nil
	}
	_, err := service.repo.FindByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if apperr.HasCode(err, "NOT_FOUND") {
		return false, nil
	}
	return false, err
}

/*
Update applies a partial update. A replaced image file is removed from disk.
*/
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Product, error) {
	product, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		*input.Name = strings.TrimSpace(*input.Name)
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 200)
	}
	if input.Price != nil {
		validator.NonNegative(FieldPrice, *input.Price)
	}
	if input.Stock != nil {
		validator.NonNegative(FieldStock, float64(*input.Stock))
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	previousImage := product.Image

	pointer.Apply(&product.Name, input.Name)
	pointer.Apply(&product.Description, input.Description)
	pointer.Apply(&product.Price, input.Price)
	pointer.Apply(&product.Stock, input.Stock)
	pointer.Apply(&product.Category, input.Category)
	pointer.Apply(&product.Image, input.Image)

	if err := service.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	if previousImage != product.Image {
		service.images.Remove(previousImage)
	}
	service.invalidate(ctx, id)
	service.logger.Info("product_updated", zap.String("product_id", id))
	return product, nil
}

// Delete removes a product and its image.
func (service *Service) Delete(ctx context.Context, id string) error {
	product, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.images.Remove(product.Image)
	service.invalidate(ctx, id)
	service.logger.Info("product_deleted", zap.String("product_id", id))
	return nil
}

// invalidate drops the list entry and the given product entries.
// Failures are logged; stale entries still expire after cacheTTL.
func (service *Service) invalidate(ctx context.Context, ids ...string) {
	keys := []string{constants.RedisKeyProductList}
	for _, id := range ids {
		keys = append(keys, constants.RedisPrefixProduct+id)
	}
	if err := service.cache.Invalidate(ctx, keys...); err != nil {
		service.logger.Warn("product_cache_invalidate_failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
