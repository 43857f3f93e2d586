// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package order implements order placement and fulfilment administration.

# Routing Strategy

  - Any authenticated principal: place an order, list own orders.
  - Admin: list every order with its customer, change status, delete.
*/
package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/medora/internal/platform/middleware"
	requestutil "github.com/taibuivan/medora/internal/platform/request"
	"github.com/taibuivan/medora/internal/platform/respond"
	"github.com/taibuivan/medora/internal/platform/sec"
)

// Handler implements the HTTP layer for orders.
type Handler struct {
	service *Service
	audit   func(http.Handler) http.Handler
}

// NewHandler constructs a new order [Handler]. audit runs after each route's
// role gate; nil disables activity recording.
func NewHandler(service *Service, audit func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, audit: middleware.Optional(audit)}
}

// Routes returns a [chi.Router] configured with order endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Customer
	customer := router.With(middleware.RequireAuth, handler.audit)
	customer.Post("/create", handler.create)
	customer.Get("/my-orders", handler.myOrders)

	// ## Administration
	admin := router.With(middleware.Authorize(sec.Roles(sec.RoleAdmin)), handler.audit)
	admin.Get("/", handler.list)
	admin.Put("/update/{id}", handler.updateStatus)
	admin.Delete("/delete/{id}", handler.delete)

	return router
}

/*
POST /orders/create.

Request (JSON):
  - products: [{productId, quantity}] (required, non-empty)
  - address: {street, city, state, postalCode, country, location}
  - paymentMethod: COD | Card | UPI

Response:
  - 201: {message, order}
  - 400: Products are required
  - 404: Product not found
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Order placed successfully", "order", order)
}

func (handler *Handler) myOrders(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	orders, err := handler.service.ListForUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, orders)
}

// GET /orders.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	views, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, views)
}

/*
PUT /orders/update/{id}.

Request (JSON):
  - status: pending | processing | shipped | delivered | cancelled

Response:
  - 200: {message, order}
  - 400: Invalid status
  - 404: Order not found
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	var input UpdateStatusInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.service.UpdateStatus(request.Context(), requestutil.Param(request, "id"), input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Updated(writer, "Order updated successfully", "order", order)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", "Order")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Order deleted successfully")
}
