// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import "context"

// # Repository Interface

/*
Repository defines the persistence contract for carts.

Every method that takes a cart ID returns [ErrCartNotFound] when the cart
does not exist.
*/
type Repository interface {
	// Create stores a new empty cart.
	Create(context context.Context, cart *Cart) error

	// FindByID returns the cart with product references only.
	FindByID(context context.Context, id string) (*Cart, error)

	// FindByIDPopulated returns the cart with each line joined to its product.
	FindByIDPopulated(context context.Context, id string) (*Cart, error)

	// AddLine atomically adds quantity to the product's line, creating the line
	// when absent. Concurrent calls never lose an increment.
	AddLine(context context.Context, cartID, productID string, quantity int) error

	// DeleteLine removes the product's line, or returns [ErrProductNotInCart].
	DeleteLine(context context.Context, cartID, productID string) error

	// Clear removes every line from the cart.
	Clear(context context.Context, cartID string) error

	// Delete removes the cart and its lines.
	Delete(context context.Context, id string) error
}
