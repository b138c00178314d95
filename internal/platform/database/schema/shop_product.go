// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/tienda/internal/platform/constants"

// ShopProductTable represents the 'shop.product' table
type ShopProductTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Code        string
	Price       string
	Stock       string
	Category    string
	Status      string
	Thumbnails  string
	CreatedAt   string
	UpdatedAt   string
}

// ShopProduct is the schema definition for shop.product
var ShopProduct = ShopProductTable{
	Table:       constants.SchemaShop + ".product",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Code:        "code",
	Price:       "price",
	Stock:       "stock",
	Category:    "category",
	Status:      "status",
	Thumbnails:  "thumbnails",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t ShopProductTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Code, t.Price, t.Stock,
		t.Category, t.Status, t.Thumbnails, t.CreatedAt, t.UpdatedAt,
	}
}
