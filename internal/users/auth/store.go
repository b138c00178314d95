// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/tienda/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for accounts.
type UserRepository interface {

	/*
		Create persists a new account.

		Returns:
		  - error: ErrDuplicateIdentity if the email is taken
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUnknownUser if missing
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email. Matching is
		exact and case-sensitive.

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUnknownUser if missing
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		UpdatePassword replaces the password hash of the account with email.

		Returns:
		  - error: ErrUnknownUser if missing
	*/
	UpdatePassword(context context.Context, email, newHash string) error

	/*
		UpdateRole sets the role of an account and returns the refreshed entity.

		Returns:
		  - *User: Updated entity
		  - error: ErrUnknownUser if missing
	*/
	UpdateRole(context context.Context, id string, role sec.UserRole) (*User, error)
}

// # Reset Token Ledger

// ResetLedger records consumed password-reset tokens.
type ResetLedger interface {

	/*
		Consume marks tokenID as used for ttl.

		Returns:
		  - bool: false if tokenID was already consumed
		  - error: Storage failures
	*/
	Consume(context context.Context, tokenID string, ttl time.Duration) (bool, error)

	// Release makes a consumed tokenID usable again. It is called when the
	// password write that followed Consume failed.
	Release(context context.Context, tokenID string) error
}
