// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/tienda/internal/platform/constants"

// ShopCartTable represents the 'shop.cart' table
type ShopCartTable struct {
	Table     string
	ID        string
	CreatedAt string
	UpdatedAt string
}

// ShopCart is the schema definition for shop.cart
var ShopCart = ShopCartTable{
	Table:     constants.SchemaShop + ".cart",
	ID:        "id",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// ShopCartItemTable represents the 'shop.cartitem' table.
// Position preserves insertion order of line items.
type ShopCartItemTable struct {
	Table     string
	CartID    string
	ProductID string
	Quantity  string
	Position  string
}

// ShopCartItem is the schema definition for shop.cartitem
var ShopCartItem = ShopCartItemTable{
	Table:     constants.SchemaShop + ".cartitem",
	CartID:    "cartid",
	ProductID: "productid",
	Quantity:  "quantity",
	Position:  "position",
}
