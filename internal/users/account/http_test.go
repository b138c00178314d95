// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tienda/internal/core/cart"
	"github.com/taibuivan/tienda/internal/core/product"
	"github.com/taibuivan/tienda/internal/platform/ctxutil"
	"github.com/taibuivan/tienda/internal/platform/sec"
	"github.com/taibuivan/tienda/internal/users/account"
	"github.com/taibuivan/tienda/internal/users/auth"
)

type noopNotifier struct{}

func (noopNotifier) SendPasswordReset(context.Context, string, string, time.Duration) error {
	return nil
}

type fixture struct {
	users   *auth.MemoryUserRepository
	auth    *auth.Service
	account *account.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	products := product.NewMemoryRepository()
	carts := cart.NewService(cart.NewMemoryRepository(products), products, logger)
	users := auth.NewMemoryUserRepository()

	authService := auth.NewService(users, carts, sec.NewTokenService("secret", "tienda.test"),
		sec.NewBcryptHasher(4), noopNotifier{}, auth.NewMemoryResetLedger(), logger, auth.Options{})

	return &fixture{
		users:   users,
		auth:    authService,
		account: account.NewService(users, authService, logger),
	}
}

func (f *fixture) register(t *testing.T, email string) *auth.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), auth.RegisterInput{
		Email: email, Password: "password-123", FirstName: "Test", LastName: "User", Age: 20,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) router(caller *auth.User) http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if caller != nil {
				claims := &sec.AuthClaims{UserID: caller.ID, Email: caller.Email, Role: string(caller.Role)}
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Route("/admin", account.NewHandler(f.account).RegisterRoutes)
	return router
}

func call(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_UpdateRole_RequiresAdmin verifies non-admin callers are rejected
before any mutation.
*/
func TestHandler_UpdateRole_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	shopper := f.register(t, "shopper@example.com")
	target := f.register(t, "target@example.com")
	path := "/admin/users/" + target.ID + "/role"

	tests := []struct {
		name       string
		caller     *auth.User
		wantStatus int
	}{
		{"Anonymous", nil, http.StatusUnauthorized},
		{"Shopper", shopper, http.StatusForbidden},
		{"Self promotion", target, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := call(f.router(tt.caller), http.MethodPut, path, `{"role":"admin"}`)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			stored, err := f.users.FindByID(context.Background(), target.ID)
			require.NoError(t, err)
			assert.Equal(t, sec.RoleUser, stored.Role)
		})
	}
}

/*
TestHandler_UpdateRole verifies an admin can change roles and bad input is rejected.
*/
func TestHandler_UpdateRole(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin@example.com")
	admin, err := f.auth.SetRole(context.Background(), admin.ID, sec.RoleAdmin)
	require.NoError(t, err)
	target := f.register(t, "target@example.com")
	router := f.router(admin)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"Unknown role", "/admin/users/" + target.ID + "/role", `{"role":"owner"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"Malformed id", "/admin/users/12345/role", `{"role":"admin"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"Unknown user", "/admin/users/0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b/role", `{"role":"admin"}`, http.StatusNotFound, "UNKNOWN_USER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := call(router, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			var envelope struct {
				Code string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantCode, envelope.Code)
		})
	}

	recorder := call(router, http.MethodPut, "/admin/users/"+target.ID+"/role", `{"role":"admin"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data auth.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, sec.RoleAdmin, envelope.Data.Role)
	assert.NotContains(t, recorder.Body.String(), "password")
}

/*
TestHandler_ListUsers verifies paging and the role filter.
*/
func TestHandler_ListUsers(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin@example.com")
	admin, err := f.auth.SetRole(context.Background(), admin.ID, sec.RoleAdmin)
	require.NoError(t, err)
	f.register(t, "one@example.com")
	f.register(t, "two@example.com")
	router := f.router(admin)

	type listEnvelope struct {
		Data []auth.User `json:"data"`
		Meta struct {
			Total   int  `json:"totalDocs"`
			HasNext bool `json:"hasNextPage"`
		} `json:"meta"`
	}

	recorder := call(router, http.MethodGet, "/admin/users?limit=2", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var page listEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 3, page.Meta.Total)
	assert.True(t, page.Meta.HasNext)

	recorder = call(router, http.MethodGet, "/admin/users?role=admin", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var admins listEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &admins))
	require.Len(t, admins.Data, 1)
	assert.Equal(t, "admin@example.com", admins.Data[0].Email)

	recorder = call(router, http.MethodGet, "/admin/users?role=owner", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = call(router, http.MethodGet, "/admin/users/"+admin.ID, "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}
