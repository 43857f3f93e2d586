// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"

	"github.com/taibuivan/medora/pkg/pagination"
)

// Service reads the activity log.
type Service struct {
	repo Repository
}

// NewService constructs a new activity [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of the log, newest first.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]*View, pagination.Meta, error) {
	views, total, err := service.repo.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return views, pagination.NewMeta(params, total), nil
}
