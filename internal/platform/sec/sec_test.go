// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tienda/internal/platform/sec"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

/*
TestTokenService_Session verifies a session token round trip and its expiry.
*/
func TestTokenService_Session(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := sec.NewTokenService("secret", "tienda.test").WithClock(fixedClock(issuedAt))

	token, err := issuer.IssueSession("u-1", "ana@tienda.test", "user", time.Hour)
	require.NoError(t, err)

	claims, err := issuer.VerifySession(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana@tienda.test", claims.Email)
	assert.Equal(t, "user", claims.Role)

	// One second past expiry
	late := sec.NewTokenService("secret", "tienda.test").WithClock(fixedClock(issuedAt.Add(time.Hour + time.Second)))
	_, err = late.VerifySession(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_Rejects verifies signature, issuer and audience checks.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := sec.NewTokenService("secret", "tienda.test")

	session, err := service.IssueSession("u-1", "ana@tienda.test", "user", time.Hour)
	require.NoError(t, err)

	reset, _, _, err := service.IssuePasswordReset("ana@tienda.test", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		verify func() error
	}{
		{
			name: "Wrong secret",
			verify: func() error {
				_, err := sec.NewTokenService("other", "tienda.test").VerifySession(session)
				return err
			},
		},
		{
			name: "Wrong issuer",
			verify: func() error {
				_, err := sec.NewTokenService("secret", "elsewhere").VerifySession(session)
				return err
			},
		},
		{
			name: "Reset token used as session",
			verify: func() error {
				_, err := service.VerifySession(reset)
				return err
			},
		},
		{
			name: "Session token used as reset",
			verify: func() error {
				_, err := service.VerifyPasswordReset(session)
				return err
			},
		},
		{
			name: "Garbage",
			verify: func() error {
				_, err := service.VerifySession("not-a-token")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.verify(), sec.ErrInvalidToken)
		})
	}
}

/*
TestTokenService_PasswordReset verifies that reset tokens carry email and a unique ID.
*/
func TestTokenService_PasswordReset(t *testing.T) {
	service := sec.NewTokenService("secret", "tienda.test")

	first, firstID, expiresAt, err := service.IssuePasswordReset("ana@tienda.test", 30*time.Minute)
	require.NoError(t, err)
	_, secondID, _, err := service.IssuePasswordReset("ana@tienda.test", 30*time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, firstID, secondID)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := service.VerifyPasswordReset(first)
	require.NoError(t, err)
	assert.Equal(t, "ana@tienda.test", claims.Email)
	assert.Equal(t, firstID, claims.ID)
}

/*
TestBcryptHasher verifies hashing and comparison.
*/
func TestBcryptHasher(t *testing.T) {
	hasher := sec.NewBcryptHasher(4)

	hash, err := hasher.Hash("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, hasher.Compare("hunter22", hash))
	assert.False(t, hasher.Compare("hunter23", hash))
}

/*
TestUserRole_AtLeast verifies the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleUser))
	assert.True(t, sec.RoleUser.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("root").AtLeast(sec.RoleUser))
	assert.False(t, sec.UserRole("").Valid())
}
