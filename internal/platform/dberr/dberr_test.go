// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tienda/internal/platform/apperr"
	"github.com/taibuivan/tienda/internal/platform/dberr"
)

/*
TestWrap verifies SQLSTATE classification into application errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"No rows", fmt.Errorf("query: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"Unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, http.StatusConflict},
		{"Foreign key violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, http.StatusNotFound},
		{"Check violation", &pgconn.PgError{Code: pgerrcode.CheckViolation}, http.StatusBadRequest},
		{"Unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := apperr.As(dberr.Wrap(tt.err, "Product"))
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.wantStatus, wrapped.HTTPStatus)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Product"))
}

/*
TestIsUniqueViolation verifies constraint-name matching.
*/
func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "product_code_key"})

	assert.True(t, dberr.IsUniqueViolation(err, ""))
	assert.True(t, dberr.IsUniqueViolation(err, "product_code_key"))
	assert.False(t, dberr.IsUniqueViolation(err, "account_email_key"))
	assert.False(t, dberr.IsUniqueViolation(errors.New("boom"), ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "cartitem_productid_fkey"}

	assert.True(t, dberr.IsForeignKeyViolation(err, "cartitem_productid_fkey"))
	assert.False(t, dberr.IsForeignKeyViolation(err, "cartitem_cartid_fkey"))
	assert.False(t, dberr.IsForeignKeyViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, ""))
}
