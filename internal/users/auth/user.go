// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements shopper identity and session management.

It defines the User entity and the flows that create and authenticate it:
registration, login, the current-session lookup, password recovery and role
changes.

# Architecture

Every account owns exactly one cart, created during registration. Sessions are
stateless signed tokens carried in an HTTP-only cookie; password-reset tokens
are single use, enforced by a short-lived ledger.
*/
package auth

import (
	"net/http"
	"time"

	"github.com/taibuivan/tienda/internal/core/cart"
	"github.com/taibuivan/tienda/internal/platform/apperr"
	"github.com/taibuivan/tienda/internal/platform/sec"
)

// # Domain Entities

// User represents a registered shopper or store administrator.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never serialized.
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Age          int          `json:"age"`
	Role         sec.UserRole `json:"role"`
	CartID       *string      `json:"cartId"`
	Cart         *cart.Cart   `json:"cart,omitempty"` // Set on login and current-session reads.
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Session is the result of a successful login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// # Field Identifiers

const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldAge         = "age"
	FieldRole        = "role"
	FieldToken       = "token"
	FieldNewPassword = "newPassword"
	FieldUserID      = "userID"
)

// # Errors

var (
	// ErrDuplicateIdentity is returned when registering an email that is taken.
	ErrDuplicateIdentity = apperr.New(http.StatusConflict, "DUPLICATE_IDENTITY", "Email is already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = apperr.New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")

	// ErrUnauthenticated is returned for a missing, invalid or expired session.
	ErrUnauthenticated = apperr.Unauthorized("Authentication required")

	// ErrInvalidOrExpiredToken is returned for an unusable password-reset token.
	ErrInvalidOrExpiredToken = apperr.New(http.StatusBadRequest, "INVALID_OR_EXPIRED_TOKEN", "Reset token is invalid or expired")

	// ErrUnknownUser is returned when the account does not exist.
	ErrUnknownUser = apperr.New(http.StatusNotFound, "UNKNOWN_USER", "User not found")

	// ErrInvalidRole is returned for a role outside [sec.Roles].
	ErrInvalidRole = apperr.ValidationError("Invalid role",
		apperr.FieldError{Field: FieldRole, Message: "must be one of: admin, user"},
	)
)
