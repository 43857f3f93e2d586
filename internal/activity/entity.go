// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"encoding/json"
	"time"

	"github.com/taibuivan/medora/internal/platform/sec"
)

// Entry is one audited request, captured after the response was written.
type Entry struct {
	PrincipalID string
	Role        sec.Role
	// Action is "METHOD /original/url".
	Action string
	// Details is the redacted JSON request body, or {} for anything else.
	Details json.RawMessage
	// Status is the response code the handler wrote.
	Status    int
	CreatedAt time.Time
}

// Principal is the user or employee projection embedded in a [View].
type Principal struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  sec.Role `json:"role"`
}

// View is a stored activity log row joined with its principal.
type View struct {
	ID        string          `json:"id"`
	Principal Principal       `json:"principal"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details"`
	Status    int             `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}
