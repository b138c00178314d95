// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tienda/internal/core/cart"
	"github.com/taibuivan/tienda/internal/platform/ctxutil"
	"github.com/taibuivan/tienda/internal/platform/sec"
)

// asUser attaches session claims for userID, standing in for Authenticate.
func asUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if userID != "" {
				claims := &sec.AuthClaims{UserID: userID, Role: string(sec.RoleUser)}
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func newRouter(f *fixture, userID string) http.Handler {
	router := chi.NewRouter()
	router.Use(asUser(userID))
	router.Route("/carts", cart.NewHandler(f.service).RegisterRoutes)
	return router
}

type cartEnvelope struct {
	Data cart.Cart `json:"data"`
	Code string    `json:"code"`
}

func serve(t *testing.T, handler http.Handler, method, path, body string) (int, cartEnvelope) {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	var envelope cartEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return recorder.Code, envelope
}

/*
TestHandler_CartLines verifies the cart endpoints end to end over HTTP.
*/
func TestHandler_CartLines(t *testing.T) {
	f := newFixture(t)
	item := f.addCatalogProduct(t, "mug")
	router := newRouter(f, "")

	status, created := serve(t, router, http.MethodPost, "/carts", "")
	require.Equal(t, http.StatusCreated, status)
	base := "/carts/" + created.Data.ID

	status, body := serve(t, router, http.MethodPost, base+"/products/"+item.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, cart.DefaultQuantity, body.Data.Products[0].Quantity)

	status, body = serve(t, router, http.MethodPost, base+"/products/"+item.ID, `{"quantity":3}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 4, body.Data.Products[0].Quantity)

	status, body = serve(t, router, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, body.Data.Products[0].Product)
	assert.Equal(t, "mug", body.Data.Products[0].Product.Title)

	status, body = serve(t, router, http.MethodGet, base+"?populate=false", "")
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body.Data.Products[0].Product)

	status, body = serve(t, router, http.MethodDelete, base+"/products/"+item.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body.Data.Products)

	status, body = serve(t, router, http.MethodDelete, base, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body.Data.Products)
}

/*
TestHandler_Errors verifies the status and code of rejected requests.
*/
func TestHandler_Errors(t *testing.T) {
	f := newFixture(t)
	c := f.newCart(t)
	item := f.addCatalogProduct(t, "mug")
	router := newRouter(f, "")

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"Malformed cart id", http.MethodGet, "/carts/64f1c0ffee", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"Malformed product id", http.MethodPost, "/carts/" + c.ID + "/products/nope", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"Zero quantity", http.MethodPost, "/carts/" + c.ID + "/products/" + item.ID, `{"quantity":0}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"Fractional quantity", http.MethodPost, "/carts/" + c.ID + "/products/" + item.ID, `{"quantity":1.5}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"Unknown cart", http.MethodGet, "/carts/0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b", "", http.StatusNotFound, "NOT_FOUND"},
		{"Not in cart", http.MethodDelete, "/carts/" + c.ID + "/products/" + item.ID, "", http.StatusNotFound, "PRODUCT_NOT_IN_CART"},
		{"Anonymous own cart", http.MethodGet, "/carts/my-cart", "", http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

/*
TestHandler_MyCart verifies the own-cart routes for a signed-in user.
*/
func TestHandler_MyCart(t *testing.T) {
	f := newFixture(t)
	c := f.newCart(t)
	item := f.addCatalogProduct(t, "tee")
	f.service.SetOwnerLookup(ownerMap{"user-1": c.ID})

	router := newRouter(f, "user-1")

	status, body := serve(t, router, http.MethodPost, "/carts/my-cart/add/"+item.ID, `{"quantity":2}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, c.ID, body.Data.ID)

	status, body = serve(t, router, http.MethodGet, "/carts/my-cart", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Data.Products, 1)
	assert.Equal(t, 2, body.Data.Products[0].Quantity)

	status, body = serve(t, newRouter(f, "user-2"), http.MethodPost, "/carts/my-cart/add/"+item.ID, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "NO_CART_ASSIGNED", body.Code)
}
