// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package task implements task assignment and the task lifecycle.

# Routing Strategy

  - Admin: create, list, get, override-update and delete any task.
  - Employee: list own tasks and move them through Pending, In Progress and
    Completed. A completed task is locked for employees.
*/
package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/medora/internal/platform/middleware"
	requestutil "github.com/taibuivan/medora/internal/platform/request"
	"github.com/taibuivan/medora/internal/platform/respond"
	"github.com/taibuivan/medora/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for task operations.
type Handler struct {
	service *Service
	audit   func(http.Handler) http.Handler
}

// NewHandler constructs a new task [Handler]. audit wraps every route after
// its role gate; nil disables activity recording.
func NewHandler(service *Service, audit func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, audit: middleware.Optional(audit)}
}

// Routes returns a [chi.Router] configured with task endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	admin := router.With(middleware.Authorize(sec.Roles(sec.RoleAdmin)), handler.audit)
	employee := router.With(middleware.Authorize(sec.Roles(sec.RoleEmployee)), handler.audit)

	// ## Employee
	employee.Get("/my-tasks", handler.myTasks)
	employee.Put("/update/{id}", handler.updateStatus)

	// ## Administration
	admin.Post("/create", handler.create)
	admin.Get("/", handler.list)
	admin.Get("/{id}", handler.get)
	admin.Put("/admin-update/{id}", handler.adminUpdate)
	admin.Delete("/delete/{id}", handler.delete)

	return router
}

/*
POST /task/create.

Request (JSON):
  - title, description, assignedTo, priority, deadline: string

Response:
  - 201: {message, task}
  - 400: All fields are required
  - 404: Assigned employee not found
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.Create(request.Context(), input, principalID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Task created successfully", "task", task)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	tasks, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tasks)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", "Task")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, task)
}

func (handler *Handler) myTasks(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tasks, err := handler.service.ListForAssignee(request.Context(), principalID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tasks)
}

/*
PUT /task/update/{id}.

Request (JSON):
  - status: "Pending" | "In Progress" | "Completed"

Response:
  - 200: {message, task}
  - 400: Invalid status, or IMMUTABLE for a completed task
  - 403: Unauthorized to update this task
  - 404: Task not found
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateStatusInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The id is validated by the service so a bad status is reported first.
	task, err := handler.service.UpdateStatus(request.Context(), requestutil.Param(request, "id"), principalID, input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Updated(writer, "Task updated successfully", "task", task)
}

/*
PUT /task/admin-update/{id}.

Request (JSON): any of title, description, assignedTo, priority, deadline, status.

Response:
  - 200: {message, task}
  - 404: Task not found, Assigned employee not found
*/
func (handler *Handler) adminUpdate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", "Task")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AdminUpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.AdminUpdate(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Updated(writer, "Task updated successfully", "task", task)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", "Task")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Task deleted successfully")
}
