// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tienda/pkg/pagination"
)

/*
TestFromQuery verifies defaults and clamping of page/limit parameters.
*/
func TestFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"Defaults", "", pagination.Params{Page: 1, Limit: 5}},
		{"Explicit", "page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"Negative page", "page=-2", pagination.Params{Page: 1, Limit: 5}},
		{"Limit too large", "limit=1000", pagination.Params{Page: 1, Limit: 5}},
		{"Garbage", "page=x&limit=y", pagination.Params{Page: 1, Limit: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pagination.FromQuery(values))
		})
	}
}

/*
TestNewMeta verifies page counts and neighbour links.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 2, Limit: 5}, 12)

	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasPrev)
	assert.True(t, meta.HasNext)
	require.NotNil(t, meta.PrevPage)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 1, *meta.PrevPage)
	assert.Equal(t, 3, *meta.NextPage)

	last := pagination.NewMeta(pagination.Params{Page: 3, Limit: 5}, 12)
	assert.False(t, last.HasNext)
	assert.Nil(t, last.NextPage)

	empty := pagination.NewMeta(pagination.Params{Page: 1, Limit: 5}, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasPrev)
	assert.False(t, empty.HasNext)
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 5}.Offset())
	assert.Equal(t, 10, pagination.Params{Page: 3, Limit: 5}.Offset())
}
