// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/medora/internal/platform/middleware"
	requestutil "github.com/taibuivan/medora/internal/platform/request"
	"github.com/taibuivan/medora/internal/platform/respond"
	"github.com/taibuivan/medora/internal/platform/sec"
)

// Handler implements the HTTP layer for image uploads.
type Handler struct {
	service *Service
}

// NewHandler constructs a new upload [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /upload router. Only staff may upload.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.Authorize(sec.Roles(sec.RoleAdmin, sec.RoleEmployee))).Post("/", handler.upload)
	return router
}

/*
POST /upload.

Request (multipart):
  - image: file (jpeg, jpg or png, max 5MB)
  - type: banner | offer | product | order | employee | profile (optional)

Response:
  - 201: {message, imagePath, image}
  - 400: ErrNoFile, ErrNotAnImage, ErrBadType
  - 413: ErrTooLarge
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := ParseMultipart(writer, request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if request.MultipartForm == nil || len(request.MultipartForm.File["image"]) == 0 {
		respond.Error(writer, request, ErrNoFile)
		return
	}

	imageType := ImageType(strings.TrimSpace(request.FormValue("type")))
	image, err := handler.service.Upload(request.Context(), request.MultipartForm.File["image"][0], imageType, principalID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, map[string]any{
		"message":   "Image uploaded successfully",
		"imagePath": image.ImageURL,
		"image":     image,
	})
}
