// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/medora/internal/platform/middleware"
	requestutil "github.com/taibuivan/medora/internal/platform/request"
	"github.com/taibuivan/medora/internal/platform/respond"
	"github.com/taibuivan/medora/internal/user"
)

// Handler implements the HTTP layer for authentication.
type Handler struct {
	service *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with auth endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/employee/login", handler.employeeLogin)

	// ## Authenticated
	router.With(middleware.RequireAuth).Post("/logout", handler.logout)

	return router
}

/*
POST /auth/register.

Request (JSON):
  - firstName, email, password: string (required)
  - lastName, phone, additionalInfo: string
  - address, location: object

Response:
  - 201: {message, user}
  - 409: Email is already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input user.RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "User registered successfully", "user", account)
}

/*
POST /auth/login.

Response:
  - 200: {message, token, user}
  - 401: Invalid email or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message": "Login successful",
		"token":   session.Token,
		"user":    session.User,
	})
}

/*
POST /auth/employee/login.

Response:
  - 200: {message, token, employee}
  - 401: Invalid email or password
*/
func (handler *Handler) employeeLogin(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.EmployeeLogin(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message":  "Login successful",
		"token":    session.Token,
		"employee": session.Employee,
	})
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Logged out successfully")
}
