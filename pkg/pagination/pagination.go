// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// Pages are 1-indexed. The response metadata mirrors what storefront clients
// need to render previous/next links without extra arithmetic.
package pagination

import (
	"net/url"

	"github.com/taibuivan/tienda/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 5
	// MaxLimit caps the page size.
	MaxLimit = 100
	// DefaultPage is the starting page.
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of items to skip for [Params.Page].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"totalDocs"`
	TotalPages int  `json:"totalPages"`
	HasPrev    bool `json:"hasPrevPage"`
	HasNext    bool `json:"hasNextPage"`
	PrevPage   *int `json:"prevPage"`
	NextPage   *int `json:"nextPage"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(params Params, total int) Meta {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	meta := Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    params.Page > 1,
		HasNext:    params.Page < totalPages,
	}

	if meta.HasPrev {
		prev := params.Page - 1
		meta.PrevPage = &prev
	}
	if meta.HasNext {
		next := params.Page + 1
		meta.NextPage = &next
	}

	return meta
}

// FromQuery parses "page" and "limit" from a query string.
//
// Invalid or out-of-range values fall back to [DefaultPage] and [DefaultLimit].
func FromQuery(values url.Values) Params {
	page := convert.ToIntD(values.Get("page"), DefaultPage)
	limit := convert.ToIntD(values.Get("limit"), DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}
