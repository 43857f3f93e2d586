// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/taibuivan/medora/internal/platform/ctxutil"
	"github.com/taibuivan/medora/internal/platform/metrics"
	"github.com/taibuivan/medora/internal/platform/sec"
)

// # Fixtures

type stubVerifier map[string]*sec.AuthClaims

func (s stubVerifier) VerifyToken(_ context.Context, token string) (*sec.AuthClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

var verifier = stubVerifier{
	"admin-token":    {PrincipalID: "a-1", Role: sec.RoleAdmin},
	"employee-token": {PrincipalID: "e-1", Role: sec.RoleEmployee},
	"user-token":     {PrincipalID: "u-1", Role: sec.RoleUser},
}

func okHandler(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

// # Role Gate

/*
TestAuthorize_RoleMatrix verifies the 401 vs 403 split of the role gate.
*/
func TestAuthorize_RoleMatrix(t *testing.T) {
	adminOnly := Authenticate(verifier)(Authorize(sec.Roles(sec.RoleAdmin))(http.HandlerFunc(okHandler)))
	staff := Authenticate(verifier)(Authorize(sec.Roles(sec.RoleAdmin, sec.RoleEmployee))(http.HandlerFunc(okHandler)))

	tests := []struct {
		name     string
		handler  http.Handler
		header   string
		wantCode int
		wantErr  string
	}{
		{"no_principal_admin_route", adminOnly, "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"employee_on_admin_route", adminOnly, "Bearer employee-token", http.StatusForbidden, "FORBIDDEN"},
		{"user_on_admin_route", adminOnly, "Bearer user-token", http.StatusForbidden, "FORBIDDEN"},
		{"admin_on_admin_route", adminOnly, "Bearer admin-token", http.StatusOK, ""},
		{"employee_on_staff_route", staff, "Bearer employee-token", http.StatusOK, ""},
		{"user_on_staff_route", staff, "Bearer user-token", http.StatusForbidden, "FORBIDDEN"},
		{"bad_token", adminOnly, "Bearer forged", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bad_scheme", adminOnly, "Basic YWRtaW46YWRtaW4=", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"empty_bearer", adminOnly, "Bearer ", http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/task", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			tt.handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, decodeError(t, recorder)["error"])
			}
		})
	}
}

/*
TestAuthorize_WithoutAuthenticate verifies the gate never reports 403 without a principal.
*/
func TestAuthorize_WithoutAuthenticate(t *testing.T) {
	handler := Authorize(sec.Roles(sec.RoleAdmin))(http.HandlerFunc(okHandler))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/activity", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Authentication required", decodeError(t, recorder)["message"])
}

/*
TestRequireAuth verifies any authenticated role passes and anonymous callers do not.
*/
func TestRequireAuth(t *testing.T) {
	handler := Authenticate(verifier)(RequireAuth(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		_, _ = writer.Write([]byte(claims.PrincipalID))
	})))

	for _, token := range []string{"admin-token", "employee-token", "user-token"} {
		request := httptest.NewRequest(http.MethodGet, "/notification/my-notifications", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, verifier[token].PrincipalID, recorder.Body.String())
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/notification/my-notifications", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// # Chain

/*
TestRequestID verifies the id is generated when absent and echoed when given.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-chosen")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-chosen", seen)
}

/*
TestStructuredLogger_LogsPrincipal verifies the access log sees claims set deeper in the chain.
*/
func TestStructuredLogger_LogsPrincipal(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := StructuredLogger(zap.New(core))(Authenticate(verifier)(http.HandlerFunc(okHandler)))

	request := httptest.NewRequest(http.MethodGet, "/task/my-tasks", nil)
	request.Header.Set("Authorization", "Bearer employee-token")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	entries := logs.FilterMessage("http_request_finished").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "e-1", fields["principal_id"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

/*
TestPanicRecovery verifies a panicking handler produces a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map write")
	}))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decodeError(t, recorder)
	assert.Equal(t, "Server Error", body["message"])
	assert.Equal(t, "INTERNAL_ERROR", body["error"])
}

/*
TestRateLimit verifies the bucket is per client IP.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := RateLimit(ctx, 0.001, 1)(http.HandlerFunc(okHandler))

	send := func(ip string) int {
		request := httptest.NewRequest(http.MethodGet, "/products", nil)
		request.Header.Set("X-Real-IP", ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

/*
TestConcurrencyLimit verifies a saturated server answers 503 once the caller gives up.
*/
func TestConcurrencyLimit(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	handler := ConcurrencyLimit(1, time.Minute)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
		writer.WriteHeader(http.StatusOK)
	}))

	done := make(chan int)
	go func() {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		done <- recorder.Code
	}()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

/*
TestConcurrencyLimit_BoundedWait verifies a request without a deadline of its
own still gives up on a saturated server after the queue timeout.
*/
func TestConcurrencyLimit_BoundedWait(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	handler := ConcurrencyLimit(1, 20*time.Millisecond)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
		writer.WriteHeader(http.StatusOK)
	}))

	done := make(chan int)
	go func() {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		done <- recorder.Code
	}()
	<-entered

	waited := make(chan int)
	go func() {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		waited <- recorder.Code
	}()

	select {
	case code := <-waited:
		assert.Equal(t, http.StatusServiceUnavailable, code)
	case <-time.After(5 * time.Second):
		t.Fatal("queued request never gave up its wait")
	}

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

/*
TestOptional verifies a nil middleware degrades to a pass-through.
*/
func TestOptional(t *testing.T) {
	recorder := httptest.NewRecorder()
	Optional(nil)(http.HandlerFunc(okHandler)).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	tagged := Optional(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("X-Wrapped", "yes")
			next.ServeHTTP(writer, request)
		})
	})
	recorder = httptest.NewRecorder()
	tagged(http.HandlerFunc(okHandler)).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "yes", recorder.Header().Get("X-Wrapped"))
}

/*
TestCORS verifies origin reflection and preflight handling.
*/
func TestCORS(t *testing.T) {
	handler := CORS(environment("production"), []string{"https://shop.example.com"})(http.HandlerFunc(okHandler))

	preflight := httptest.NewRequest(http.MethodOptions, "/products", nil)
	preflight.Header.Set("Origin", "https://shop.example.com")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, preflight)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://shop.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))

	foreign := httptest.NewRequest(http.MethodGet, "/products", nil)
	foreign.Header.Set("Origin", "https://evil.example.com")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, foreign)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

type environment string

func (e environment) IsDevelopment() bool { return e == "development" }

/*
TestMetrics_RoutePattern verifies requests are labelled by chi pattern, not raw path.
*/
func TestMetrics_RoutePattern(t *testing.T) {
	collector := metrics.NewCollector()

	router := chi.NewRouter()
	router.Use(Metrics(collector))
	router.Get("/task/{id}", okHandler)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/task/0190c8e4-0000-7000-8000-000000000001", nil))

	recorder := httptest.NewRecorder()
	collector.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, recorder.Body.String(), `http_requests_total{method="GET",route="/task/{id}",status="200"} 1`)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.10:5123"
	assert.Equal(t, "192.0.2.10", RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", RealIP(request))
}
