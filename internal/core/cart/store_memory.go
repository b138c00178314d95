// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/tienda/internal/core/product"
)

// ProductSource resolves products for populated reads.
type ProductSource interface {
	FindByID(context context.Context, id string) (*product.Product, error)
}

// MemoryRepository keeps carts in process memory. A single mutex serializes
// every read-modify-write, so concurrent adds to one line are never lost.
//
// It does not re-check product existence on AddLine; the Postgres store does
// through its foreign key.
type MemoryRepository struct {
	mu       sync.Mutex
	carts    map[string]*Cart
	products ProductSource
	now      func() time.Time
}

func NewMemoryRepository(products ProductSource) *MemoryRepository {
	return &MemoryRepository{
		carts:    make(map[string]*Cart),
		products: products,
		now:      time.Now,
	}
}

func (repository *MemoryRepository) Create(_ context.Context, cart *Cart) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored := clone(cart)
	repository.carts[cart.ID] = stored
	return nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Cart, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return clone(stored), nil
}

func (repository *MemoryRepository) FindByIDPopulated(context context.Context, id string) (*Cart, error) {
	cart, err := repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	for index := range cart.Products {
		line := &cart.Products[index]
		found, err := repository.products.FindByID(context, line.ProductID)
		switch {
		case err == nil:
			line.Product = found
		case errors.Is(err, product.ErrProductNotFound):
			// Dangling reference
		default:
			return nil, err
		}
	}

	return cart, nil
}

func (repository *MemoryRepository) AddLine(_ context.Context, cartID, productID string, quantity int) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}

	if line := stored.Line(productID); line != nil {
		if line.Quantity > MaxQuantity-quantity {
			return ErrInvalidQuantity
		}
		line.Quantity += quantity
	} else {
		stored.Products = append(stored.Products, LineItem{ProductID: productID, Quantity: quantity})
	}
	stored.UpdatedAt = repository.now().UTC()

	return nil
}

func (repository *MemoryRepository) DeleteLine(_ context.Context, cartID, productID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}
	if stored.Line(productID) == nil {
		return ErrProductNotInCart
	}

	stored.Products = slices.DeleteFunc(stored.Products, func(line LineItem) bool {
		return line.ProductID == productID
	})
	stored.UpdatedAt = repository.now().UTC()

	return nil
}

func (repository *MemoryRepository) Clear(_ context.Context, cartID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}

	stored.Products = []LineItem{}
	stored.UpdatedAt = repository.now().UTC()

	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.carts[id]; !ok {
		return ErrCartNotFound
	}
	delete(repository.carts, id)
	return nil
}

func clone(cart *Cart) *Cart {
	copied := *cart
	copied.Products = slices.Clone(cart.Products)
	if copied.Products == nil {
		copied.Products = []LineItem{}
	}
	return &copied
}
