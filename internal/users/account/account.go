// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles store administration of user accounts.

It lets administrators browse registered accounts and change their roles.

# Architecture

  - Domain: This package depends on the auth package for the User entity and
    delegates role changes to the auth service.
  - Security: Every endpoint requires the admin role.
*/
package account

import (
	"context"

	"github.com/taibuivan/tienda/internal/platform/sec"
	"github.com/taibuivan/tienda/internal/users/auth"
)

// # Repository Contracts

// AccountRepository defines the read model for account administration.
type AccountRepository interface {
	/*
		List returns a page of accounts, oldest first.

		Parameters:
		  - context: context.Context
		  - role: string (empty for every role)
		  - limit, offset: int

		Returns:
		  - []*auth.User: Accounts on the page
		  - int: Total matching count
		  - error: Storage failures
	*/
	List(context context.Context, role string, limit, offset int) ([]*auth.User, int, error)
}

// Identities is the slice of the auth service used by administration.
type Identities interface {
	Profile(context context.Context, userID string) (*auth.User, error)
	SetRole(context context.Context, userID string, role sec.UserRole) (*auth.User, error)
}

// # Field Identifiers

const (
	FieldUserID = "userID"
	FieldRole   = "role"
)
