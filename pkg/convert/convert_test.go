// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tienda/pkg/convert"
)

func TestToIntD(t *testing.T) {
	assert.Equal(t, 7, convert.ToIntD("7", 1))
	assert.Equal(t, 1, convert.ToIntD("", 1))
	assert.Equal(t, 1, convert.ToIntD("seven", 1))
	assert.Equal(t, -3, convert.ToIntD(" -3 ", 1))
}

func TestToBoolOK(t *testing.T) {
	tests := []struct {
		input     string
		wantValue bool
		wantOK    bool
	}{
		{"true", true, true},
		{"FALSE", false, true},
		{"1", false, false},
		{"shoes", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		value, ok := convert.ToBoolOK(tt.input)
		assert.Equal(t, tt.wantValue, value, tt.input)
		assert.Equal(t, tt.wantOK, ok, tt.input)
	}
}
