// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"net/http"
	"time"

	"github.com/taibuivan/tienda/internal/platform/apperr"
)

// Product is an item of the storefront catalog.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Status      bool      `json:"status"`
	Thumbnails  []string  `json:"thumbnails"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter holds the parameters for a paginated catalog search.
type Filter struct {
	// Query is "true"/"false" to filter by status, otherwise a
	// case-insensitive substring of the title or category.
	Query string
	// Sort orders by price: SortAsc, SortDesc, or "" for newest first.
	Sort string
}

// CreateInput is the payload for a new product. A nil Status means active.
type CreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Status      *bool    `json:"status"`
	Thumbnails  []string `json:"thumbnails"`
}

// UpdateInput is a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Code        *string   `json:"code"`
	Price       *float64  `json:"price"`
	Stock       *int      `json:"stock"`
	Category    *string   `json:"category"`
	Status      *bool     `json:"status"`
	Thumbnails  *[]string `json:"thumbnails"`
}

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Realtime event names.
const (
	EventSnapshot = "products"
	EventCreate   = "new-product"
	EventDelete   = "delete-product"
)

const (
	FieldTitle    = "title"
	FieldCode     = "code"
	FieldPrice    = "price"
	FieldStock    = "stock"
	FieldCategory = "category"
	FieldSort     = "sort"
	FieldID       = "productID"
)

var (
	ErrProductNotFound = apperr.NotFound("Product")
	ErrDuplicateCode   = apperr.New(http.StatusConflict, "DUPLICATE_PRODUCT_CODE", "A product with this code already exists")
)
