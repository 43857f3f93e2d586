// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/medora/internal/platform/constants"
	"github.com/taibuivan/medora/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/medora/internal/platform/request"
)

// Redacted replaces the value of every secret-looking key.
const Redacted = "[REDACTED]"

var emptyDetails = json.RawMessage(`{}`)

/*
Middleware records one [Entry] per authenticated request after the handler
has written its response.

The JSON body is captured up to [constants.MaxActivityBodySize] and handed
back to the handler untouched. Anonymous requests are not recorded.
*/
func Middleware(recorder Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			details := captureBody(request)
			wrapped := chimw.NewWrapResponseWriter(writer, request.ProtoMajor)

			next.ServeHTTP(wrapped, request)

			claims := ctxutil.GetAuthUser(request.Context())
			if claims == nil {
				return
			}

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}

			recorder.Record(Entry{
				PrincipalID: claims.PrincipalID,
				Role:        claims.Role,
				Action:      request.Method + " " + request.RequestURI,
				Details:     details,
				Status:      status,
			})
		})
	}
}

// captureBody peeks at a JSON body and restores it for the next handler.
func captureBody(request *http.Request) json.RawMessage {
	if request.Body == nil || request.Body == http.NoBody || !requestutil.IsJSON(request) {
		return emptyDetails
	}

	head, err := io.ReadAll(io.LimitReader(request.Body, constants.MaxActivityBodySize+1))
	request.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(head), request.Body), Closer: request.Body}
	if err != nil || len(head) > constants.MaxActivityBodySize {
		return emptyDetails
	}

	return Redact(head)
}

type readCloser struct {
	io.Reader
	io.Closer
}

// Redact masks secret-looking keys at any depth. Anything that is not a JSON object yields {}.
func Redact(body []byte) json.RawMessage {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return emptyDetails
	}

	redacted, err := json.Marshal(redactValue(payload))
	if err != nil {
		return emptyDetails
	}
	return redacted
}

func redactValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, nested := range typed {
			if isSecretKey(key) {
				typed[key] = Redacted
				continue
			}
			typed[key] = redactValue(nested)
		}
		return typed
	case []any:
		for i, nested := range typed {
			typed[i] = redactValue(nested)
		}
		return typed
	default:
		return value
	}
}

func isSecretKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "password") || strings.Contains(lower, "secret") || lower == "token"
}
