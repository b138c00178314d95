// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cart implements shopping carts and their line items.

A cart holds at most one line per product. Adding a product that is already
in the cart increases the quantity of the existing line. Lines keep the order
in which products were first added.

Carts are created empty, either explicitly or by the registration flow, which
assigns one cart to each account.
*/
package cart

import (
	"fmt"
	"net/http"
	"time"

	"github.com/taibuivan/tienda/internal/core/product"
	"github.com/taibuivan/tienda/internal/platform/apperr"
)

// # Domain Entities

// Cart is a shopping cart and its ordered line items.
type Cart struct {
	ID        string     `json:"id"`
	Products  []LineItem `json:"products"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// LineItem is one product in a cart.
//
// Product is set only on populated reads, and stays nil there when the
// referenced product no longer exists.
type LineItem struct {
	ProductID string           `json:"productId"`
	Product   *product.Product `json:"product,omitempty"`
	Quantity  int              `json:"quantity"`
}

// Line returns the line item for productID, or nil.
func (cart *Cart) Line(productID string) *LineItem {
	for index := range cart.Products {
		if cart.Products[index].ProductID == productID {
			return &cart.Products[index]
		}
	}
	return nil
}

// # Constants

const (
	FieldCartID    = "cartID"
	FieldProductID = "productID"
	FieldQuantity  = "quantity"
	FieldPopulate  = "populate"
)

const (
	// DefaultQuantity is used when an add request omits the quantity.
	DefaultQuantity = 1

	// MaxQuantity bounds a single line, including merged adds.
	MaxQuantity = 9999
)

// # Errors

var (
	// ErrCartNotFound is returned when the cart does not exist.
	ErrCartNotFound = apperr.NotFound("Cart")

	// ErrProductNotFound is returned when the referenced product does not exist.
	ErrProductNotFound = product.ErrProductNotFound

	// ErrProductNotInCart is returned when removing a product the cart does not hold.
	ErrProductNotInCart = apperr.New(http.StatusNotFound, "PRODUCT_NOT_IN_CART", "Product not found in cart")

	// ErrInvalidQuantity is returned for a quantity outside 1..MaxQuantity,
	// either as requested or after merging into an existing line.
	ErrInvalidQuantity = apperr.New(http.StatusBadRequest, "INVALID_QUANTITY",
		fmt.Sprintf("Quantity must be an integer between 1 and %d", MaxQuantity))

	// ErrNoCartAssigned is returned when the caller's account has no cart.
	ErrNoCartAssigned = apperr.New(http.StatusBadRequest, "NO_CART_ASSIGNED", "No cart is assigned to this user")
)
