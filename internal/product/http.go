// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package product implements the public catalog and its admin maintenance.

Reads are public and cached in Redis; writes are admin-only and invalidate
the affected cache entries. Create and update accept multipart forms with
an optional image file, or JSON when no file is sent.
*/
package product

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/middleware"
	requestutil "github.com/taibuivan/medora/internal/platform/request"
	"github.com/taibuivan/medora/internal/platform/respond"
	"github.com/taibuivan/medora/internal/platform/sec"
	"github.com/taibuivan/medora/internal/upload"
	"github.com/taibuivan/medora/pkg/pointer"
)

// ImageStore saves optional uploaded files.
type ImageStore interface {
	SaveOptional(request *http.Request, field string) (string, error)
	Remove(publicPath string)
}

// Handler implements the HTTP layer for the catalog.
type Handler struct {
	service *Service
	images  ImageStore
}

// NewHandler constructs a new product [Handler].
func NewHandler(service *Service, images ImageStore) *Handler {
	return &Handler{service: service, images: images}
}

// Routes returns a [chi.Router] configured with catalog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// ## Administration
	admin := router.With(middleware.Authorize(sec.Roles(sec.RoleAdmin)))
	admin.Post("/create", handler.create)
	admin.Put("/update/{id}", handler.update)
	admin.Delete("/delete/{id}", handler.delete)

	return router
}

/*
POST /products/create.

Request (multipart or JSON):
  - name: string (required)
  - price: number (required)
  - description, category: string
  - stock: integer
  - image: file (optional)

Response:
  - 201: {message, product}
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput

	if requestutil.IsJSON(request) {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	} else {
		if err := upload.ParseMultipart(writer, request); err != nil {
			respond.Error(writer, request, err)
			return
		}

		price, err := formFloat(request, FieldPrice)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		stock, err := formInt(request, FieldStock)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		input = CreateInput{
			Name:        request.FormValue(FieldName),
			Description: request.FormValue(FieldDescription),
			Price:       price,
			Stock:       pointer.Val(stock),
			Category:    request.FormValue(FieldCategory),
		}

		imagePath, err := handler.images.SaveOptional(request, FieldImage)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		input.Image = imagePath
	}

	product, err := handler.service.Create(request.Context(), input)
	if err != nil {
		handler.images.Remove(input.Image)
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Product created successfully", "product", product)
}

// GET /products.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, products)
}

// GET /products/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	product, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

/*
PUT /products/update/{id}.

Request (multipart or JSON): any subset of the create fields.

Response:
  - 200: {message, product}
  - 404: Product not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", "Product")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if requestutil.IsJSON(request) {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	} else {
		if err := upload.ParseMultipart(writer, request); err != nil {
			respond.Error(writer, request, err)
			return
		}

		price, err := formFloat(request, FieldPrice)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		stock, err := formInt(request, FieldStock)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		input = UpdateInput{
			Name:        requestutil.OptionalFormValue(request, FieldName),
			Description: requestutil.OptionalFormValue(request, FieldDescription),
			Price:       price,
			Stock:       stock,
			Category:    requestutil.OptionalFormValue(request, FieldCategory),
		}

		imagePath, err := handler.images.SaveOptional(request, FieldImage)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		if imagePath != "" {
			input.Image = &imagePath
		}
	}

	product, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		if input.Image != nil {
			handler.images.Remove(*input.Image)
		}
		respond.Error(writer, request, err)
		return
	}

	respond.Updated(writer, "Product updated successfully", "product", product)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", "Product")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Product deleted successfully")
}

// # Form Helpers

func formFloat(request *http.Request, field string) (*float64, error) {
	raw := requestutil.OptionalFormValue(request, field)
	if raw == nil {
		return nil, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: "must be a number"})
	}
	return pointer.To(value), nil
}

func formInt(request *http.Request, field string) (*int, error) {
	raw := requestutil.OptionalFormValue(request, field)
	if raw == nil {
		return nil, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: "must be a whole number"})
	}
	return pointer.To(value), nil
}
