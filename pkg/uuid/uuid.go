// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid generates the time-ordered identifiers used as primary keys
// for every Medora table.
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string.
//
// Version 7 ids sort by creation time, which keeps B-tree inserts append-only
// and lets "newest first" listings fall back on the primary key.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// The random source failing is not recoverable.
		panic("uuid: failed to generate v7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
