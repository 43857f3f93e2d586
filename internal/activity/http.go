// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package activity audits authenticated requests.

Entries are captured by [Middleware] after each response and persisted
asynchronously by [AsyncRecorder]. Administrators read the log through a
paginated endpoint.
*/
package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/medora/internal/platform/middleware"
	"github.com/taibuivan/medora/internal/platform/respond"
	"github.com/taibuivan/medora/internal/platform/sec"
	"github.com/taibuivan/medora/pkg/pagination"
)

// Handler implements the HTTP layer for the activity log.
type Handler struct {
	service *Service
}

// NewHandler constructs a new activity [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with activity endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.Authorize(sec.Roles(sec.RoleAdmin))).Get("/", handler.list)
	return router
}

/*
GET /activity?page=1&limit=20.

Response:
  - 200: {data: []View, meta}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	views, meta, err := handler.service.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, views, meta)
}
