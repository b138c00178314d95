// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/tienda/internal/platform/apperr"
	"github.com/taibuivan/tienda/internal/platform/constants"
	"github.com/taibuivan/tienda/internal/platform/ctxkey"
	"github.com/taibuivan/tienda/internal/platform/ctxutil"
	"github.com/taibuivan/tienda/internal/platform/respond"
	"github.com/taibuivan/tienda/internal/platform/sec"
)

// TokenVerifier is the part of the token service the middleware needs.
type TokenVerifier interface {
	VerifySession(token string) (*sec.AuthClaims, error)
}

// identityHolder lets the access logger learn who the caller was after
// Authenticate has run further down the chain.
type identityHolder struct {
	userID string
}

func withIdentityHolder(ctx context.Context, holder *identityHolder) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentityHolder, holder)
}

// Authenticate resolves the caller from the session cookie or, failing that,
// an "Authorization: Bearer" header.
//
// # Flow
//  1. No token: the request proceeds anonymously.
//  2. Invalid or expired token: the session cookie is cleared and the
//     request proceeds anonymously.
//  3. Valid token: [*sec.AuthClaims] are injected into the context.
//
// Authenticate never rejects a request. Use [RequireAuth] or [RequireRole] for that.
func Authenticate(verifier TokenVerifier, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, fromCookie := SessionToken(request)
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.VerifySession(token)
			if err != nil {
				if fromCookie {
					http.SetCookie(writer, sec.ExpiredSessionCookie(secureCookies))
				}
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			if holder, ok := ctx.Value(ctxkey.KeyIdentityHolder).(*identityHolder); ok {
				holder.userID = claims.UserID
			}
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// SessionToken returns the raw session token, cookie first, then bearer
// header, and whether it came from the cookie.
func SessionToken(request *http.Request) (string, bool) {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	scheme, token, found := strings.Cut(request.Header.Get(constants.HeaderAuthorization), " ")
	if found && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(token), false
	}

	return "", false
}

// RequireAuth blocks requests that are not authenticated with 401.
// Must be registered AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose caller does not hold at least role.
//
// Anonymous callers get 401, authenticated callers with a lower role get 403.
// It implies [RequireAuth].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
