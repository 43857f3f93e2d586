// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package cart implements the per-principal shopping cart.
package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/medora/internal/platform/middleware"
	requestutil "github.com/taibuivan/medora/internal/platform/request"
	"github.com/taibuivan/medora/internal/platform/respond"
)

// Handler implements the HTTP layer for the cart.
type Handler struct {
	service *Service
}

// NewHandler constructs a new cart [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with cart endpoints. Any authenticated role may use them.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/add", handler.add)
	router.Get("/", handler.get)
	router.Put("/update/{productId}", handler.update)
	router.Delete("/remove/{productId}", handler.remove)
	router.Delete("/clear", handler.clear)

	return router
}

/*
POST /cart/add.

Request (JSON):
  - productId: string (required)
  - quantity: integer >= 1

Response:
  - 201: {message, cart}
  - 404: Product not found
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AddInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.service.Add(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Product added to cart", "cart", cart)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.service.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cart)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.service.UpdateQuantity(request.Context(), userID, requestutil.Param(request, "productId"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Updated(writer, "Cart updated", "cart", cart)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.service.Remove(request.Context(), userID, requestutil.Param(request, "productId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Updated(writer, "Product removed from cart", "cart", cart)
}

func (handler *Handler) clear(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Clear(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Cart cleared")
}
