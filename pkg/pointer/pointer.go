// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer holds generic helpers for optional values.
//
// Partial-update payloads decode absent JSON fields as nil pointers; these
// helpers turn them back into values at the service boundary.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Fallback dereferences p, or returns fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Apply stores *p into target when p is non-nil and reports whether it did.
func Apply[T any](target *T, p *T) bool {
	if p == nil {
		return false
	}
	*target = *p
	return true
}
