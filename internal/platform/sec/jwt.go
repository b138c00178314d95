// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. Domain services receive it through narrow interfaces so
// tests can substitute a fixed clock or a cheap hasher.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taibuivan/tienda/internal/platform/constants"
)

// ErrInvalidToken is returned for any token that fails signature, expiry,
// issuer or audience checks.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside a session token.
//
// Identity is carried in the token so [middleware.Authenticate] can rebuild
// the caller without a storage lookup.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// ResetClaims represents the payload of a password-reset token.
//
// The registered ID (jti) lets the reset ledger enforce single use.
type ResetClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
}

// TokenService signs and verifies HS256 tokens.
//
// Session and reset tokens share the secret but carry distinct audiences,
// so one can never be replayed as the other.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret, issuer string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	service.now = now
	return service
}

// IssueSession creates a signed session token for a user.
func (service *TokenService) IssueSession(userID, email, role string, timeToLive time.Duration) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{constants.AudienceSession},
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	return service.sign(claims)
}

// IssuePasswordReset creates a signed reset token bound to an email address.
//
// # Returns
//   - The signed token.
//   - The token ID (jti), used by the reset ledger.
//   - The expiry instant.
func (service *TokenService) IssuePasswordReset(email string, timeToLive time.Duration) (string, string, time.Time, error) {
	currentTime := service.now()
	expiresAt := currentTime.Add(timeToLive)
	tokenID := uuid.NewString()

	claims := ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   email,
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{constants.AudiencePasswordReset},
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	}

	signed, err := service.sign(claims)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, tokenID, expiresAt, nil
}

// VerifySession checks a session token and returns its claims.
func (service *TokenService) VerifySession(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	if err := service.parse(tokenString, claims, constants.AudienceSession); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyPasswordReset checks a reset token and returns its claims.
func (service *TokenService) VerifyPasswordReset(tokenString string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := service.parse(tokenString, claims, constants.AudiencePasswordReset); err != nil {
		return nil, err
	}
	if claims.Email == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (service *TokenService) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signedToken, nil
}

func (service *TokenService) parse(tokenString string, claims jwt.Claims, audience string) error {
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return nil
}
