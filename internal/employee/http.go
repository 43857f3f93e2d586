// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package employee manages staff accounts and their sequential employee codes.

# Routing Strategy

  - Admin: create, list, get, update and delete employees.
  - Employee: read own profile and change own password.

Create and update accept multipart forms with an optional profileImage file,
or a JSON body when no image is sent.
*/
package employee

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/medora/internal/platform/middleware"
	requestutil "github.com/taibuivan/medora/internal/platform/request"
	"github.com/taibuivan/medora/internal/platform/respond"
	"github.com/taibuivan/medora/internal/platform/sec"
	"github.com/taibuivan/medora/internal/upload"
)

// FieldProfileImage is the multipart file field for the avatar.
const FieldProfileImage = "profileImage"

// ImageStore saves optional uploaded files.
type ImageStore interface {
	SaveOptional(request *http.Request, field string) (string, error)
	Remove(publicPath string)
}

// # Handler Implementation

// Handler implements the HTTP layer for employee operations.
type Handler struct {
	service *Service
	images  ImageStore
}

// NewHandler constructs a new employee [Handler].
func NewHandler(service *Service, images ImageStore) *Handler {
	return &Handler{service: service, images: images}
}

// Routes returns a [chi.Router] configured with employee endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	admin := router.With(middleware.Authorize(sec.Roles(sec.RoleAdmin)))
	self := router.With(middleware.Authorize(sec.Roles(sec.RoleEmployee)))

	// ## Self Service
	self.Get("/profile", handler.profile)
	self.Put("/change-password", handler.changePassword)

	// ## Administration
	admin.Post("/create", handler.create)
	admin.Get("/", handler.list)
	admin.Get("/{id}", handler.get)
	admin.Put("/update/{id}", handler.update)
	admin.Delete("/delete/{id}", handler.delete)

	return router
}

/*
POST /employee/create.

Request (multipart or JSON):
  - name, email, phone, password: string
  - profileImage: file (optional)

Response:
  - 201: {message, employee}
  - 400: Validation failed
  - 409: Email is already registered
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
		input = CreateInput{
			Name:     request.FormValue(FieldName),
			Email:    request.FormValue(FieldEmail),
			Phone:    request.FormValue(FieldPhone),
			Password: request.FormValue(FieldPassword),
		}

		imagePath, err := handler.images.SaveOptional(request, FieldProfileImage)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		input.ProfileImage = imagePath
	}

	employee, err := handler.service.Create(request.Context(), input)
	if err != nil {
		handler.images.Remove(input.ProfileImage)
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Employee created successfully", "employee", employee)
}

/*
GET /employee.

Response:
  - 200: []Employee
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	employees, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, employees)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", "Employee")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	employee, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, employee)
}

func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	employee, err := handler.service.Get(request.Context(), principalID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, employee)
}

/*
PUT /employee/update/{id}.

Request (multipart or JSON): any of name, email, phone, profileImage.

Response:
  - 200: {message, employee}
  - 404: Employee not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", "Employee")
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
		input = UpdateInput{
			Name:  requestutil.OptionalFormValue(request, FieldName),
			Email: requestutil.OptionalFormValue(request, FieldEmail),
			Phone: requestutil.OptionalFormValue(request, FieldPhone),
		}

		imagePath, err := handler.images.SaveOptional(request, FieldProfileImage)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		if imagePath != "" {
			input.ProfileImage = &imagePath
		}
	}

	employee, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		if input.ProfileImage != nil {
			handler.images.Remove(*input.ProfileImage)
		}
		respond.Error(writer, request, err)
		return
	}

	respond.Updated(writer, "Employee updated successfully", "employee", employee)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", "Employee")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Employee deleted successfully")
}

/*
PUT /employee/change-password.

Request (JSON):
  - currentPassword, newPassword: string

Response:
  - 200: {message}
  - 400: Current password is incorrect
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	principalID, err := requestutil.RequiredPrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ChangePasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), principalID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Password changed successfully")
}
