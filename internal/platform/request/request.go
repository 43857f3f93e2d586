// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/ctxutil"
	"github.com/taibuivan/medora/internal/platform/sec"
	"github.com/taibuivan/medora/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

/*
UUIDParam retrieves a URL parameter that must be a UUID.

A malformed id can never match a stored row, so it is reported as a
NotFound for the named resource rather than reaching the database.
*/
func UUIDParam(request *http.Request, name, resource string) (string, error) {
	raw := Param(request, name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", apperr.NotFound(resource)
	}
	return raw, nil
}

/*
RequiredClaims ensures the request is authenticated and returns the principal claims.

Returns:
  - *sec.AuthClaims: The authenticated principal
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

/*
RequiredPrincipalID returns the id of the currently authenticated principal.
*/
func RequiredPrincipalID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.PrincipalID, nil
}

/*
IsJSON reports whether the request body is declared as JSON.

Endpoints that accept file uploads take multipart forms but also accept a
plain JSON body when no file is sent.
*/
func IsJSON(request *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

/*
OptionalFormValue returns a pointer to the posted form value, or nil when the
field was not submitted at all. An empty submitted value yields a pointer to "".
*/
func OptionalFormValue(request *http.Request, name string) *string {
	values, ok := request.PostForm[name]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}
