// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tienda/internal/platform/apperr"
	"github.com/taibuivan/tienda/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Camiseta", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, "title", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_Lengths contrasts character and byte limits on multi-byte input.
*/
func TestValidator_Lengths(t *testing.T) {
	enye := strings.Repeat("ñ", 60)

	tests := []struct {
		name     string
		check    func(v *validate.Validator)
		hasError bool
	}{
		{"MaxLen counts characters", func(v *validate.Validator) { v.MaxLen("password", enye, 72) }, false},
		{"MaxBytes counts bytes", func(v *validate.Validator) { v.MaxBytes("password", enye, 72) }, true},
		{"MaxBytes at limit", func(v *validate.Validator) { v.MaxBytes("password", strings.Repeat("a", 72), 72) }, false},
		{"MaxBytes over limit", func(v *validate.Validator) { v.MaxBytes("password", strings.Repeat("a", 73), 72) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.check(v)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Email tests address parsing, including display-name forms.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		value    string
		hasError bool
	}{
		{"ana@tienda.test", false},
		{"ana", true},
		{"", true},
		{"Ana <ana@tienda.test>", true},
	}

	for _, tt := range tests {
		v := &validate.Validator{}
		v.Email("email", tt.value)
		assert.Equal(t, tt.hasError, v.HasErrors(), tt.value)
	}
}

/*
TestValidator_Numbers tests Positive and NonNegative.
*/
func TestValidator_Numbers(t *testing.T) {
	assert.False(t, (&validate.Validator{}).Positive("quantity", 1).HasErrors())
	assert.True(t, (&validate.Validator{}).Positive("quantity", 0).HasErrors())
	assert.True(t, (&validate.Validator{}).Positive("quantity", -4).HasErrors())

	assert.False(t, (&validate.Validator{}).NonNegative("price", 0).HasErrors())
	assert.True(t, (&validate.Validator{}).NonNegative("price", -0.01).HasErrors())
}

/*
TestValidator_Chain_Failure verifies that every failed rule is reported.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}
	v.Required("first_name", "").
		Email("email", "nope").
		MinLen("password", "abc", 6).
		UUID("cart", "123").
		OneOf("role", "root", "admin", "user")

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 5)

	fields := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{"first_name", "email", "password", "cart", "role"}, fields)
}

/*
TestValidator_Chain_Success verifies a clean chain yields no error.
*/
func TestValidator_Chain_Success(t *testing.T) {
	v := &validate.Validator{}
	v.Required("first_name", "Ana").
		MaxLen("first_name", "Ana", 80).
		Email("email", "ana@tienda.test").
		UUID("cart", "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b").
		Custom("age", false, "unused")

	assert.NoError(t, v.Err())
}
