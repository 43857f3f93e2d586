// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Envelopes
//
//   - Mutations: {"message": "...", "<entity>": {...}}
//   - Reads: the entity or array itself, or {"data", "meta"} for paginated lists.
//   - Errors: {"message": "...", "error": "<CODE>", "details": [...]}
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/ctxutil"
	"github.com/taibuivan/medora/pkg/pagination"
)

// PaginatedEnvelope is the JSON envelope for paginated list responses.
type PaginatedEnvelope struct {
	Data interface{}     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 response with data as the body.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, data)
}

// Created writes a 201 response in the {message, <key>: entity} envelope.
func Created(writer http.ResponseWriter, message, key string, entity interface{}) {
	JSON(writer, http.StatusCreated, map[string]interface{}{
		"message": message,
		key:       entity,
	})
}

// Updated writes a 200 response in the {message, <key>: entity} envelope.
func Updated(writer http.ResponseWriter, message, key string, entity interface{}) {
	JSON(writer, http.StatusOK, map[string]interface{}{
		"message": message,
		key:       entity,
	})
}

// Message writes a 200 response carrying only a message (deletes, clears).
func Message(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, map[string]string{"message": message})
}

// Paginated writes a 200 response with paginated data and a metadata block.
func Paginated(writer http.ResponseWriter, data interface{}, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: metadata})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the client.
		logger.Error("unhandled_error_swallowed", zap.Error(err))
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("api_server_error",
			zap.String("code", appError.Code),
			zap.NamedError("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Message: appError.Message,
		Error:   appError.Code,
		Details: appError.Details,
	})
}
