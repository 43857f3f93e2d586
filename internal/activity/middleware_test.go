// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/medora/internal/platform/constants"
	"github.com/taibuivan/medora/internal/platform/ctxutil"
	"github.com/taibuivan/medora/internal/platform/sec"
)

type captureRecorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (c *captureRecorder) Record(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
}

func authenticated(request *http.Request, claims *sec.AuthClaims) *http.Request {
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

/*
TestMiddleware_RecordsAfterResponse verifies the entry carries the written status and a redacted body.
*/
func TestMiddleware_RecordsAfterResponse(t *testing.T) {
	recorder := &captureRecorder{}
	var seenBody string
	handler := Middleware(recorder)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		raw, _ := io.ReadAll(request.Body)
		seenBody = string(raw)
		writer.WriteHeader(http.StatusCreated)
	}))

	body := `{"title":"Restock","owner":{"password":"hunter2"},"newPassword":"x","items":[{"clientSecret":"s"}]}`
	request := httptest.NewRequest(http.MethodPost, "/task/create?source=web", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	request = authenticated(request, &sec.AuthClaims{PrincipalID: "a-1", Role: sec.RoleAdmin})

	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, body, seenBody, "handler must see the original body")
	require.Len(t, recorder.entries, 1)

	got := recorder.entries[0]
	assert.Equal(t, "a-1", got.PrincipalID)
	assert.Equal(t, sec.RoleAdmin, got.Role)
	assert.Equal(t, "POST /task/create?source=web", got.Action)
	assert.Equal(t, http.StatusCreated, got.Status)

	var details map[string]any
	require.NoError(t, json.Unmarshal(got.Details, &details))
	assert.Equal(t, "Restock", details["title"])
	assert.Equal(t, Redacted, details["owner"].(map[string]any)["password"])
	assert.Equal(t, Redacted, details["newPassword"])
	assert.Equal(t, Redacted, details["items"].([]any)[0].(map[string]any)["clientSecret"])
}

func TestMiddleware_SkipsAnonymous(t *testing.T) {
	recorder := &captureRecorder{}
	handler := Middleware(recorder)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/task", nil))

	assert.Empty(t, recorder.entries)
}

func TestMiddleware_NonJSONAndOversized(t *testing.T) {
	recorder := &captureRecorder{}
	var seenLen int
	handler := Middleware(recorder)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		raw, _ := io.ReadAll(request.Body)
		seenLen = len(raw)
	}))
	claims := &sec.AuthClaims{PrincipalID: "e-1", Role: sec.RoleEmployee}

	form := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("--boundary--"))
	form.Header.Set("Content-Type", "multipart/form-data; boundary=boundary")
	handler.ServeHTTP(httptest.NewRecorder(), authenticated(form, claims))

	huge := `{"note":"` + strings.Repeat("a", constants.MaxActivityBodySize) + `"}`
	large := httptest.NewRequest(http.MethodPost, "/orders/create", strings.NewReader(huge))
	large.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(httptest.NewRecorder(), authenticated(large, claims))

	require.Len(t, recorder.entries, 2)
	assert.JSONEq(t, `{}`, string(recorder.entries[0].Details))
	assert.JSONEq(t, `{}`, string(recorder.entries[1].Details))
	assert.Equal(t, http.StatusOK, recorder.entries[1].Status)
	assert.Equal(t, len(huge), seenLen, "oversized bodies still reach the handler intact")
}

func TestRedact_NonObject(t *testing.T) {
	assert.JSONEq(t, `{}`, string(Redact([]byte(`["a","b"]`))))
	assert.JSONEq(t, `{}`, string(Redact([]byte(`not json`))))
	assert.JSONEq(t, `{"token":"[REDACTED]","status":"Completed"}`, string(Redact([]byte(`{"token":"abc","status":"Completed"}`))))
}
