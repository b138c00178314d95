// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/tienda/internal/core/cart"
	"github.com/taibuivan/tienda/internal/platform/apperr"
	"github.com/taibuivan/tienda/internal/platform/constants"
	"github.com/taibuivan/tienda/internal/platform/sec"
	"github.com/taibuivan/tienda/internal/platform/validate"
	"github.com/taibuivan/tienda/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer signs and verifies session and password-reset tokens.
type TokenIssuer interface {
	IssueSession(userID, email, role string, timeToLive time.Duration) (string, error)
	IssuePasswordReset(email string, timeToLive time.Duration) (token, tokenID string, expiresAt time.Time, err error)
	VerifySession(token string) (*sec.AuthClaims, error)
	VerifyPasswordReset(token string) (*sec.ResetClaims, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Compare(plainTextPassword, existingHash string) bool
}

// CartProvisioner creates, reads and removes the cart owned by an account.
type CartProvisioner interface {
	CreateCart(context context.Context) (*cart.Cart, error)
	GetCart(context context.Context, cartID string, populate bool) (*cart.Cart, error)
	DeleteCart(context context.Context, cartID string) error
}

// Notifier delivers password-reset links.
type Notifier interface {
	SendPasswordReset(context context.Context, to, token string, expiresIn time.Duration) error
}

// Options holds token lifetimes. Zero values fall back to the defaults.
type Options struct {
	SessionTTL    time.Duration
	ResetTokenTTL time.Duration
}

// Service implements account use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed with the same care as the token code.
type Service struct {
	users    UserRepository
	carts    CartProvisioner
	tokens   TokenIssuer
	hasher   PasswordHasher
	notifier Notifier
	ledger   ResetLedger
	logger   *slog.Logger
	options  Options

	// dispatches tracks detached reset mails.
	dispatches sync.WaitGroup
}

// NewService constructs a new auth [Service].
func NewService(
	users UserRepository,
	carts CartProvisioner,
	tokens TokenIssuer,
	hasher PasswordHasher,
	notifier Notifier,
	ledger ResetLedger,
	logger *slog.Logger,
	options Options,
) *Service {
	if options.SessionTTL <= 0 {
		options.SessionTTL = DefaultSessionTTL
	}
	if options.ResetTokenTTL <= 0 {
		options.ResetTokenTTL = DefaultResetTokenTTL
	}

	return &Service{
		users:    users,
		carts:    carts,
		tokens:   tokens,
		hasher:   hasher,
		notifier: notifier,
		ledger:   ledger,
		logger:   logger,
		options:  options,
	}
}

// SessionTTL is the lifetime of issued session tokens.
func (service *Service) SessionTTL() time.Duration {
	return service.options.SessionTTL
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new shopper.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
}

/*
Register validates input, creates the account's cart, then the account.

Description: The two writes form a saga. If the account cannot be stored,
the cart is deleted again. The role is always [sec.RoleUser].

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity with its empty cart attached
  - error: Validation, ErrDuplicateIdentity or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	// Fast path; the unique constraint remains the source of truth
	if _, err := service.users.FindByEmail(context, input.Email); err == nil {
		return nil, ErrDuplicateIdentity
	} else if !errors.Is(err, ErrUnknownUser) {
		return nil, err
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Step 1: the cart
	userCart, err := service.carts.CreateCart(context)
	if err != nil {
		return nil, err
	}

	// Step 2: the account referencing it
	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Age:          input.Age,
		Role:         sec.RoleUser,
		CartID:       &userCart.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.users.Create(context, user); err != nil {
		service.compensateCart(context, userCart.ID, err)
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("cart_id", userCart.ID),
	)

	user.Cart = userCart
	return user, nil
}

// compensateCart removes the cart of a registration whose account write failed.
func (service *Service) compensateCart(context context.Context, cartID string, cause error) {
	cleanupCtx, cancel := contextWithoutCancel(context, constants.MailDispatchTimeout)
	defer cancel()

	if err := service.carts.DeleteCart(cleanupCtx, cartID); err != nil {
		service.logger.Error("register_orphan_cart",
			slog.String("cart_id", cartID),
			slog.Any("cause", cause),
			slog.Any("error", err),
		)
		return
	}

	service.logger.Warn("register_rolled_back", slog.String("cart_id", cartID), slog.Any("cause", cause))
}

// # Authentication Flow

/*
Login verifies credentials and issues a session token.

Parameters:
  - context: context.Context
  - email, password: string

Returns:
  - *Session: The token and the user with the cart populated
  - error: ErrInvalidCredentials or internal failures
*/
func (service *Service) Login(context context.Context, email, password string) (*Session, error) {
	user, err := service.users.FindByEmail(context, strings.TrimSpace(email))
	if errors.Is(err, ErrUnknownUser) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !service.hasher.Compare(password, user.PasswordHash) {
		service.logger.Warn("login_failed", slog.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := service.tokens.IssueSession(user.ID, user.Email, string(user.Role), service.options.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	if err := service.attachCart(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return &Session{Token: token, User: user}, nil
}

/*
CurrentUser resolves the account behind a session token.

Returns:
  - *User: The user with the cart populated
  - error: ErrUnauthenticated for a missing, invalid or expired token, or a
    token whose account no longer exists
*/
func (service *Service) CurrentUser(context context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := service.tokens.VerifySession(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := service.users.FindByID(context, claims.UserID)
	if errors.Is(err, ErrUnknownUser) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}

	if err := service.attachCart(context, user); err != nil {
		return nil, err
	}
	return user, nil
}

// attachCart populates user.Cart. A dangling cart reference is logged and left empty.
func (service *Service) attachCart(context context.Context, user *User) error {
	if user.CartID == nil {
		return nil
	}

	userCart, err := service.carts.GetCart(context, *user.CartID, true)
	if errors.Is(err, cart.ErrCartNotFound) {
		service.logger.Warn("user_cart_missing", slog.String("user_id", user.ID), slog.String("cart_id", *user.CartID))
		return nil
	}
	if err != nil {
		return err
	}

	user.Cart = userCart
	return nil
}

// # Password Recovery

/*
RequestPasswordReset emails a reset link to the account with email.

Description: The caller always gets success for a well-formed address, so
the response never reveals whether an account exists. Lookup, signing and
delivery failures are logged. Delivery runs detached from the request.

Parameters:
  - ctx: context.Context
  - email: string

Returns:
  - error: Validation errors only
*/
func (service *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	validator := &validate.Validator{}
	if err := validator.Required(FieldEmail, email).Email(FieldEmail, email).Err(); err != nil {
		return err
	}

	user, err := service.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUnknownUser) {
		service.logger.Info("password_reset_unknown_email")
		return nil
	}
	if err != nil {
		service.logger.Error("password_reset_lookup_failed", slog.Any("error", err))
		return nil
	}

	token, tokenID, _, err := service.tokens.IssuePasswordReset(user.Email, service.options.ResetTokenTTL)
	if err != nil {
		service.logger.Error("password_reset_token_failed", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil
	}

	service.dispatch(ctx, func(dispatchCtx context.Context) {
		if err := service.notifier.SendPasswordReset(dispatchCtx, user.Email, token, service.options.ResetTokenTTL); err != nil {
			service.logger.Error("password_reset_mail_failed",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
			return
		}
		service.logger.Info("password_reset_mail_sent", slog.String("user_id", user.ID), slog.String("token_id", tokenID))
	})

	return nil
}

/*
ResetPassword sets a new password for the account named by a reset token.

Description: Each token works once. The token is consumed before the new
hash is written, so two concurrent resets with one token cannot both pass.
If the write then fails, the token is released so the link can be retried.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: Validation, ErrInvalidOrExpiredToken or storage failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldToken, token).
		Required(FieldNewPassword, newPassword).
		MinLen(FieldNewPassword, newPassword, MinPasswordLength).
		MaxBytes(FieldNewPassword, newPassword, MaxPasswordBytes)
	if err := validator.Err(); err != nil {
		return err
	}

	claims, err := service.tokens.VerifyPasswordReset(token)
	if err != nil {
		return ErrInvalidOrExpiredToken
	}

	hashedPassword, err := service.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	fresh, err := service.ledger.Consume(context, claims.ID, remaining)
	if err != nil {
		return apperr.Unavailable("Reset token ledger", err)
	}
	if !fresh {
		service.logger.Warn("password_reset_token_replayed", slog.String("token_id", claims.ID))
		return ErrInvalidOrExpiredToken
	}

	if err := service.users.UpdatePassword(context, claims.Email, hashedPassword); err != nil {
		if errors.Is(err, ErrUnknownUser) {
			return ErrInvalidOrExpiredToken
		}
		if releaseErr := service.ledger.Release(context, claims.ID); releaseErr != nil {
			service.logger.Error("password_reset_token_release_failed",
				slog.String("token_id", claims.ID),
				slog.Any("error", releaseErr),
			)
		}
		return err
	}

	service.logger.Info("password_reset_completed", slog.String("token_id", claims.ID))
	return nil
}

// Drain waits for in-flight reset mails. Call during shutdown.
func (service *Service) Drain() {
	service.dispatches.Wait()
}

// dispatch runs send in its own goroutine with a bounded context that
// survives the request.
func (service *Service) dispatch(parent context.Context, send func(context.Context)) {
	service.dispatches.Add(1)
	go func() {
		defer service.dispatches.Done()

		dispatchCtx, cancel := contextWithoutCancel(parent, constants.MailDispatchTimeout)
		defer cancel()

		send(dispatchCtx)
	}()
}

// # Roles

/*
SetRole changes the role of an account. Callers must restrict it to admins.

Returns:
  - *User: The refreshed account
  - error: ErrInvalidRole or ErrUnknownUser
*/
func (service *Service) SetRole(context context.Context, userID string, role sec.UserRole) (*User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := service.users.UpdateRole(context, userID, role)
	if err != nil {
		return nil, err
	}

	service.logger.Warn("user_role_changed", slog.String("user_id", userID), slog.String("role", string(role)))
	return user, nil
}

// # Lookups

// Profile returns an account by ID.
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	return service.users.FindByID(context, userID)
}

// CartIDOf returns the cart assigned to userID, or "" if there is none.
func (service *Service) CartIDOf(context context.Context, userID string) (string, error) {
	user, err := service.users.FindByID(context, userID)
	if errors.Is(err, ErrUnknownUser) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if user.CartID == nil {
		return "", nil
	}
	return *user.CartID, nil
}

// # Bootstrap

/*
EnsureAdmin makes sure an admin account exists for email.

Description: A missing account is registered normally and then promoted.
An existing account is promoted if needed; its password is left untouched.
*/
func (service *Service) EnsureAdmin(context context.Context, email, password string) error {
	user, err := service.users.FindByEmail(context, email)
	switch {
	case errors.Is(err, ErrUnknownUser):
		user, err = service.Register(context, RegisterInput{
			Email:     email,
			Password:  password,
			FirstName: "Admin",
			LastName:  "Tienda",
		})
		if err != nil {
			return fmt.Errorf("auth_bootstrap_register_failed: %w", err)
		}
	case err != nil:
		return err
	}

	if user.Role == sec.RoleAdmin {
		return nil
	}

	if _, err := service.SetRole(context, user.ID, sec.RoleAdmin); err != nil {
		return fmt.Errorf("auth_bootstrap_promote_failed: %w", err)
	}

	service.logger.Info("admin_bootstrapped", slog.String("user_id", user.ID))
	return nil
}

// # Helpers

func validateRegistration(input RegisterInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxBytes(FieldPassword, input.Password, MaxPasswordBytes).
		Required(FieldFirstName, input.FirstName).
		MaxLen(FieldFirstName, input.FirstName, 100).
		Required(FieldLastName, input.LastName).
		MaxLen(FieldLastName, input.LastName, 100).
		Custom(FieldAge, input.Age < 0 || input.Age > MaxAge, "must be between 0 and 150")

	return validator.Err()
}

// contextWithoutCancel detaches from the parent's cancellation while keeping
// its values, then bounds the result by timeout.
func contextWithoutCancel(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), timeout)
}
