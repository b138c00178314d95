// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tienda/pkg/uuid"
)

func TestNew(t *testing.T) {
	first, second := uuid.New(), uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.NotEqual(t, first, second)
	assert.Equal(t, byte('7'), first[14])
}

func TestValid(t *testing.T) {
	assert.True(t, uuid.Valid("0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"))
	assert.False(t, uuid.Valid("not-a-uuid"))
	assert.False(t, uuid.Valid("{0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b}"))
	assert.False(t, uuid.Valid(""))
}
