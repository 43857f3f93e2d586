// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package user manages customer and administrator accounts.

# Routing Strategy

  - Admin: list every account.
  - User and admin: read and update their own profile.

Registration and login live in the auth package.
*/
package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/medora/internal/platform/middleware"
	requestutil "github.com/taibuivan/medora/internal/platform/request"
	"github.com/taibuivan/medora/internal/platform/respond"
	"github.com/taibuivan/medora/internal/platform/sec"
)

// Handler implements the HTTP layer for user accounts.
type Handler struct {
	service *Service
}

// NewHandler constructs a new user [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with user endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Authorize(sec.Roles(sec.RoleAdmin))).Get("/", handler.list)

	self := router.With(middleware.Authorize(sec.Roles(sec.RoleAdmin, sec.RoleUser)))
	self.Get("/profile", handler.profile)
	self.Put("/profile", handler.updateProfile)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, users)
}

func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Get(request.Context(), principalID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
PUT /users/profile.

Request (JSON): any of firstName, lastName, phone, profileImage, address,
location, additionalInfo.

Response:
  - 200: {message, user}
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateProfileInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), principalID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Updated(writer, "Profile updated successfully", "user", user)
}
