// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tienda/internal/platform/migration"
)

func TestToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/tienda":   "pgx5://u:p@db:5432/tienda",
		"postgresql://u:p@db:5432/tienda": "pgx5://u:p@db:5432/tienda",
		"pgx5://u:p@db:5432/tienda":       "pgx5://u:p@db:5432/tienda",
		"host=db dbname=tienda":           "host=db dbname=tienda",
	}

	for input, want := range tests {
		assert.Equal(t, want, migration.ToPgx5DSN(input), input)
	}
}
