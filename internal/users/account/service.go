// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tienda/internal/platform/sec"
	"github.com/taibuivan/tienda/internal/platform/validate"
	"github.com/taibuivan/tienda/internal/users/auth"
	"github.com/taibuivan/tienda/pkg/slice"
)

// # Service Layer

// Service orchestrates account administration.
type Service struct {
	accountRepository AccountRepository
	identities        Identities
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accountRepo AccountRepository, identities Identities, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		identities:        identities,
		logger:            logger,
	}
}

var roleNames = slice.Map(sec.Roles, func(role sec.UserRole) string { return string(role) })

/*
ListUsers returns a page of accounts, optionally filtered by role.

Parameters:
  - context: context.Context
  - role: string ("" for all)
  - limit, offset: int

Returns:
  - []*auth.User: Accounts without password hashes in their JSON form
  - int: Total matching count
  - error: Validation or storage failures
*/
func (service *Service) ListUsers(context context.Context, role string, limit, offset int) ([]*auth.User, int, error) {
	if role != "" {
		validator := &validate.Validator{}
		if err := validator.OneOf(FieldRole, role, roleNames...).Err(); err != nil {
			return nil, 0, err
		}
	}

	return service.accountRepository.List(context, role, limit, offset)
}

// GetUser returns one account.
func (service *Service) GetUser(context context.Context, userID string) (*auth.User, error) {
	return service.identities.Profile(context, userID)
}

/*
ChangeRole sets the role of userID on behalf of an administrator.

Parameters:
  - context: context.Context
  - actorID: string (the administrator making the change)
  - userID: string
  - role: string

Returns:
  - *auth.User: The refreshed account
  - error: auth.ErrInvalidRole or auth.ErrUnknownUser
*/
func (service *Service) ChangeRole(context context.Context, actorID, userID, role string) (*auth.User, error) {
	user, err := service.identities.SetRole(context, userID, sec.UserRole(role))
	if err != nil {
		return nil, err
	}

	service.logger.Info("admin_role_change",
		slog.String("actor_id", actorID),
		slog.String("user_id", userID),
		slog.String("role", role),
	)

	return user, nil
}
