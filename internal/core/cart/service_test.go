// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tienda/internal/core/cart"
	"github.com/taibuivan/tienda/internal/core/product"
	"github.com/taibuivan/tienda/pkg/uuid"
)

type fixture struct {
	service  *cart.Service
	products *product.MemoryRepository
}

type ownerMap map[string]string

func (owners ownerMap) CartIDOf(_ context.Context, userID string) (string, error) {
	return owners[userID], nil
}

// alwaysInCatalog reports every product as existing.
type alwaysInCatalog struct{}

func (alwaysInCatalog) Exists(context.Context, string) (bool, error) { return true, nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := product.NewMemoryRepository()
	return &fixture{
		service:  cart.NewService(cart.NewMemoryRepository(products), products, discardLogger()),
		products: products,
	}
}

func (f *fixture) addCatalogProduct(t *testing.T, title string) *product.Product {
	t.Helper()
	now := time.Now().UTC()
	item := &product.Product{
		ID:        uuid.New(),
		Title:     title,
		Code:      title,
		Price:     10,
		Stock:     5,
		Status:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.products.Create(context.Background(), item))
	return item
}

func (f *fixture) newCart(t *testing.T) *cart.Cart {
	t.Helper()
	created, err := f.service.CreateCart(context.Background())
	require.NoError(t, err)
	return created
}

/*
TestService_CreateCart verifies a new cart starts empty and can be read back.
*/
func TestService_CreateCart(t *testing.T) {
	f := newFixture(t)
	created := f.newCart(t)

	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Products)

	stored, err := f.service.GetCart(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
	assert.NotNil(t, stored.Products)
}

/*
TestService_AddProduct_Merges verifies repeated adds of one product share a line.
*/
func TestService_AddProduct_Merges(t *testing.T) {
	f := newFixture(t)
	c := f.newCart(t)
	productA := f.addCatalogProduct(t, "a")
	productB := f.addCatalogProduct(t, "b")
	ctx := context.Background()

	_, err := f.service.AddProduct(ctx, c.ID, productA.ID, 2)
	require.NoError(t, err)
	_, err = f.service.AddProduct(ctx, c.ID, productB.ID, 1)
	require.NoError(t, err)
	updated, err := f.service.AddProduct(ctx, c.ID, productA.ID, 3)
	require.NoError(t, err)

	require.Len(t, updated.Products, 2)
	assert.Equal(t, productA.ID, updated.Products[0].ProductID)
	assert.Equal(t, 5, updated.Products[0].Quantity)
	assert.Equal(t, 1, updated.Line(productB.ID).Quantity)
}

/*
TestService_AddProduct_Errors verifies each rejection leaves the cart unchanged.
*/
func TestService_AddProduct_Errors(t *testing.T) {
	f := newFixture(t)
	c := f.newCart(t)
	known := f.addCatalogProduct(t, "known")

	tests := []struct {
		name      string
		cartID    string
		productID string
		quantity  int
		wantErr   error
	}{
		{"Zero quantity", c.ID, known.ID, 0, cart.ErrInvalidQuantity},
		{"Negative quantity", c.ID, known.ID, -2, cart.ErrInvalidQuantity},
		{"Above maximum", c.ID, known.ID, cart.MaxQuantity + 1, cart.ErrInvalidQuantity},
		{"Max int", c.ID, known.ID, math.MaxInt, cart.ErrInvalidQuantity},
		{"Unknown cart", uuid.New(), known.ID, 1, cart.ErrCartNotFound},
		{"Unknown product", c.ID, uuid.New(), 1, cart.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.AddProduct(context.Background(), tt.cartID, tt.productID, tt.quantity)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	stored, err := f.service.GetCart(context.Background(), c.ID, false)
	require.NoError(t, err)
	assert.Empty(t, stored.Products)
}

/*
TestService_AddProduct_MergeLimit verifies a merge may reach but not pass
MaxQuantity, and a rejected merge leaves the line as it was.
*/
func TestService_AddProduct_MergeLimit(t *testing.T) {
	f := newFixture(t)
	c := f.newCart(t)
	item := f.addCatalogProduct(t, "bulk")
	ctx := context.Background()

	_, err := f.service.AddProduct(ctx, c.ID, item.ID, cart.MaxQuantity-1)
	require.NoError(t, err)

	_, err = f.service.AddProduct(ctx, c.ID, item.ID, 2)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	stored, err := f.service.GetCart(ctx, c.ID, false)
	require.NoError(t, err)
	require.Len(t, stored.Products, 1)
	assert.Equal(t, cart.MaxQuantity-1, stored.Products[0].Quantity)

	updated, err := f.service.AddProduct(ctx, c.ID, item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, cart.MaxQuantity, updated.Products[0].Quantity)
}

/*
TestService_RemoveProduct verifies removal and the not-in-cart rejection.
*/
func TestService_RemoveProduct(t *testing.T) {
	f := newFixture(t)
	c := f.newCart(t)
	held := f.addCatalogProduct(t, "held")
	absent := f.addCatalogProduct(t, "absent")
	ctx := context.Background()

	_, err := f.service.AddProduct(ctx, c.ID, held.ID, 4)
	require.NoError(t, err)

	_, err = f.service.RemoveProduct(ctx, c.ID, absent.ID)
	assert.ErrorIs(t, err, cart.ErrProductNotInCart)

	unchanged, err := f.service.GetCart(ctx, c.ID, false)
	require.NoError(t, err)
	require.Len(t, unchanged.Products, 1)
	assert.Equal(t, 4, unchanged.Products[0].Quantity)

	updated, err := f.service.RemoveProduct(ctx, c.ID, held.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Products)

	_, err = f.service.RemoveProduct(ctx, uuid.New(), held.ID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

/*
TestService_Clear verifies clearing is idempotent.
*/
func TestService_Clear(t *testing.T) {
	f := newFixture(t)
	c := f.newCart(t)
	ctx := context.Background()

	for _, title := range []string{"x", "y", "z"} {
		_, err := f.service.AddProduct(ctx, c.ID, f.addCatalogProduct(t, title).ID, 1)
		require.NoError(t, err)
	}

	first, err := f.service.Clear(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, first.Products)

	second, err := f.service.Clear(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Products, second.Products)

	_, err = f.service.Clear(ctx, uuid.New())
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

/*
TestService_AddProduct_Concurrent verifies that concurrent adds of the same
product are all counted.
*/
func TestService_AddProduct_Concurrent(t *testing.T) {
	f := newFixture(t)
	c := f.newCart(t)
	item := f.addCatalogProduct(t, "hot")

	tests := []struct {
		name    string
		callers int
	}{
		{"Double submit", 2},
		{"Burst", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Clear(context.Background(), c.ID)
			require.NoError(t, err)

			var wg sync.WaitGroup
			start := make(chan struct{})
			for range tt.callers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					_, err := f.service.AddProduct(context.Background(), c.ID, item.ID, 1)
					assert.NoError(t, err)
				}()
			}
			close(start)
			wg.Wait()

			stored, err := f.service.GetCart(context.Background(), c.ID, false)
			require.NoError(t, err)
			require.Len(t, stored.Products, 1)
			assert.Equal(t, tt.callers, stored.Products[0].Quantity)
		})
	}
}

/*
TestService_GetCart_Populated verifies lines are joined with product data.
*/
func TestService_GetCart_Populated(t *testing.T) {
	f := newFixture(t)
	c := f.newCart(t)
	item := f.addCatalogProduct(t, "mug")
	ctx := context.Background()

	_, err := f.service.AddProduct(ctx, c.ID, item.ID, 2)
	require.NoError(t, err)

	raw, err := f.service.GetCart(ctx, c.ID, false)
	require.NoError(t, err)
	assert.Nil(t, raw.Products[0].Product)

	populated, err := f.service.GetCart(ctx, c.ID, true)
	require.NoError(t, err)
	require.NotNil(t, populated.Products[0].Product)
	assert.Equal(t, "mug", populated.Products[0].Product.Title)
	assert.Equal(t, 2, populated.Products[0].Quantity)
}

/*
TestService_AddProduct_ProductDeletedAfterCheck verifies that the existence
check and the line write are not isolated: a product that vanishes between
them still ends up in an in-memory cart, as a dangling reference.
*/
func TestService_AddProduct_ProductDeletedAfterCheck(t *testing.T) {
	products := product.NewMemoryRepository()
	service := cart.NewService(cart.NewMemoryRepository(products), alwaysInCatalog{}, discardLogger())
	ctx := context.Background()

	c, err := service.CreateCart(ctx)
	require.NoError(t, err)

	vanished := uuid.New()
	updated, err := service.AddProduct(ctx, c.ID, vanished, 1)
	require.NoError(t, err)
	require.Len(t, updated.Products, 1)

	populated, err := service.GetCart(ctx, c.ID, true)
	require.NoError(t, err)
	require.Len(t, populated.Products, 1)
	assert.Equal(t, vanished, populated.Products[0].ProductID)
	assert.Nil(t, populated.Products[0].Product)
}

/*
TestService_OwnCart verifies the own-cart operations resolve the account's cart.
*/
func TestService_OwnCart(t *testing.T) {
	f := newFixture(t)
	c := f.newCart(t)
	item := f.addCatalogProduct(t, "tee")
	ctx := context.Background()

	f.service.SetOwnerLookup(ownerMap{"with-cart": c.ID})

	updated, err := f.service.AddToOwnCart(ctx, "with-cart", item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Line(item.ID).Quantity)

	mine, err := f.service.MyCart(ctx, "with-cart")
	require.NoError(t, err)
	assert.Equal(t, c.ID, mine.ID)
	assert.NotNil(t, mine.Products[0].Product)

	_, err = f.service.AddToOwnCart(ctx, "no-cart", item.ID, 1)
	assert.ErrorIs(t, err, cart.ErrNoCartAssigned)

	_, err = f.service.MyCart(ctx, "no-cart")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

/*
TestService_DeleteCart verifies deletion and the missing-cart error.
*/
func TestService_DeleteCart(t *testing.T) {
	f := newFixture(t)
	c := f.newCart(t)

	require.NoError(t, f.service.DeleteCart(context.Background(), c.ID))

	_, err := f.service.GetCart(context.Background(), c.ID, false)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
	assert.ErrorIs(t, f.service.DeleteCart(context.Background(), c.ID), cart.ErrCartNotFound)
}
