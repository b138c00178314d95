// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer provides generic helpers for optional values, mostly used
// by partial-update payloads where nil means "leave unchanged".
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Apply copies *p into dst when p is non-nil. It reports whether a copy happened.
func Apply[T any](dst *T, p *T) bool {
	if p == nil {
		return false
	}
	*dst = *p
	return true
}
