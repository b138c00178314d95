// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// DefaultSessionTTL is the lifetime of a session token and its cookie.
	DefaultSessionTTL = 1 * time.Hour

	// DefaultResetTokenTTL is the lifetime of a password-reset token.
	DefaultResetTokenTTL = 1 * time.Hour

	// MinPasswordLength applies to registration and resets.
	MinPasswordLength = 8

	// MaxPasswordBytes is the bcrypt input limit. It counts bytes, not characters.
	MaxPasswordBytes = 72

	// MaxAge bounds the age field.
	MaxAge = 150
)
