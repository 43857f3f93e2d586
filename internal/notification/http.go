// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notification implements the per-principal mailbox.

# Routing Strategy

  - Admin and employee: send to any principal by id.
  - Admin: send to an employee by employee code.
  - Any authenticated principal: read, count and mark their own notifications.
*/
package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/medora/internal/platform/middleware"
	requestutil "github.com/taibuivan/medora/internal/platform/request"
	"github.com/taibuivan/medora/internal/platform/respond"
	"github.com/taibuivan/medora/internal/platform/sec"
)

// Handler implements the HTTP layer for notifications.
type Handler struct {
	service *Service
	audit   func(http.Handler) http.Handler
}

// NewHandler constructs a new notification [Handler]. audit runs after each route's
// role gate; nil disables activity recording.
func NewHandler(service *Service, audit func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, audit: middleware.Optional(audit)}
}

// Routes returns a [chi.Router] configured with notification endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Authorize(sec.Roles(sec.RoleAdmin, sec.RoleEmployee)), handler.audit).Post("/send", handler.send)
	router.With(middleware.Authorize(sec.Roles(sec.RoleAdmin)), handler.audit).Post("/send-to-employee", handler.sendToEmployee)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth, handler.audit)
		r.Get("/my-notifications", handler.mine)
		r.Get("/unread-count", handler.unreadCount)
		r.Put("/mark-read/{id}", handler.markRead)
	})

	return router
}

/*
POST /notification/send.

Request (JSON):
  - receiverId (alias receiver), message: string

Response:
  - 201: {message, notification}
  - 400: Receiver and message are required
*/
func (handler *Handler) send(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SendInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	notification, err := handler.service.Send(request.Context(), principalID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Notification sent successfully", "notification", notification)
}

/*
POST /notification/send-to-employee.

Request (JSON):
  - employeeId: employee code, e.g. "MD-004"
  - message: string

Response:
  - 201: {message, notification}
  - 404: Employee not found
*/
func (handler *Handler) sendToEmployee(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SendToEmployeeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	notification, err := handler.service.SendToEmployee(request.Context(), principalID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Notification sent successfully", "notification", notification)
}

func (handler *Handler) mine(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	notifications, err := handler.service.ListForReceiver(request.Context(), principalID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, notifications)
}

func (handler *Handler) unreadCount(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.service.UnreadCount(request.Context(), principalID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"count": count})
}

/*
PUT /notification/mark-read/{id}.

Response:
  - 200: {message, notification}
  - 404: Notification not found (also for another receiver's notification)
*/
func (handler *Handler) markRead(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	notification, err := handler.service.MarkRead(request.Context(), requestutil.Param(request, "id"), principalID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Updated(writer, "Notification marked as read", "notification", notification)
}
