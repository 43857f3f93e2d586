// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/medora/internal/platform/ctxutil"
	"github.com/taibuivan/medora/internal/platform/sec"
)

func newTestRouter(service *Service) http.Handler {
	router := chi.NewRouter()
	router.Mount("/employee", NewHandler(service, nopImages{}).Routes())
	return router
}

func send(t *testing.T, handler http.Handler, method, path, body string, claims *sec.AuthClaims) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var decoded map[string]any
	if recorder.Body.Len() > 0 && strings.HasPrefix(strings.TrimSpace(recorder.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

var (
	adminClaims = &sec.AuthClaims{PrincipalID: "admin-1", Role: sec.RoleAdmin}
	userClaims  = &sec.AuthClaims{PrincipalID: "user-1", Role: sec.RoleUser}
)

/*
TestHTTP_CreateJSON verifies the admin create flow and the response envelope.
*/
func TestHTTP_CreateJSON(t *testing.T) {
	router := newTestRouter(newTestService(newMemoryRepository(), &memorySequence{}))

	body := `{"name":"Lan Pham","email":"Lan@Medora.vn","phone":"0901234567","password":"s3cret-pass"}`
	recorder, decoded := send(t, router, http.MethodPost, "/employee/create", body, adminClaims)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "Employee created successfully", decoded["message"])

	employee := decoded["employee"].(map[string]any)
	assert.Equal(t, "MD-001", employee["employeeId"])
	assert.Equal(t, "lan@medora.vn", employee["email"])
	assert.NotContains(t, employee, "password")
	assert.NotContains(t, employee, "passwordHash")
}

/*
TestHTTP_RoleGate verifies non-admins cannot manage employees.
*/
func TestHTTP_RoleGate(t *testing.T) {
	router := newTestRouter(newTestService(newMemoryRepository(), &memorySequence{}))

	recorder, _ := send(t, router, http.MethodGet, "/employee/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, _ = send(t, router, http.MethodGet, "/employee/", "", userClaims)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	employeeClaims := &sec.AuthClaims{PrincipalID: "emp-1", Role: sec.RoleEmployee}
	recorder, decoded := send(t, router, http.MethodPost, "/employee/create", `{}`, employeeClaims)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "FORBIDDEN", decoded["error"])
}

func TestHTTP_GetMalformedID(t *testing.T) {
	router := newTestRouter(newTestService(newMemoryRepository(), &memorySequence{}))

	recorder, decoded := send(t, router, http.MethodGet, "/employee/not-a-uuid", "", adminClaims)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Employee not found", decoded["message"])
}

/*
TestHTTP_ProfileAndPassword verifies the self-service endpoints act on the caller only.
*/
func TestHTTP_ProfileAndPassword(t *testing.T) {
	service := newTestService(newMemoryRepository(), &memorySequence{})
	created, err := service.Create(context.Background(), validInput("minh@medora.vn"))
	require.NoError(t, err)

	router := newTestRouter(service)
	self := &sec.AuthClaims{PrincipalID: created.ID, Role: sec.RoleEmployee}

	recorder, decoded := send(t, router, http.MethodGet, "/employee/profile", "", self)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, created.EmployeeID, decoded["employeeId"])

	recorder, decoded = send(t, router, http.MethodPut, "/employee/change-password",
		`{"currentPassword":"wrong-pass","newPassword":"brand-new"}`, self)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Current password is incorrect", decoded["message"])

	recorder, decoded = send(t, router, http.MethodPut, "/employee/change-password",
		`{"currentPassword":"s3cret-pass","newPassword":"brand-new"}`, self)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Password changed successfully", decoded["message"])

	recorder, _ = send(t, router, http.MethodGet, "/employee/profile", "", adminClaims)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestHTTP_DeleteMissing(t *testing.T) {
	router := newTestRouter(newTestService(newMemoryRepository(), &memorySequence{}))

	recorder, _ := send(t, router, http.MethodDelete, "/employee/delete/0190c8e4-0000-7000-8000-000000000001", "", adminClaims)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
