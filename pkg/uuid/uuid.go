// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid generates the opaque identifiers used for request correlation.
//
// Version 7 values are preferred because they sort by creation time, which
// keeps log lines for consecutive requests adjacent when grepping by ID.
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string, or a random UUIDv4 if the clock-based
// generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
