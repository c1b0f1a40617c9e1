// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	guuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tagbook/pkg/uuid"
)

func TestNew_IsVersion7(t *testing.T) {
	parsed, err := guuid.Parse(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, guuid.Version(7), parsed.Version())
}

func TestNew_Sortable(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	assert.LessOrEqual(t, first[:13], second[:13])
}

func TestValid(t *testing.T) {
	assert.True(t, uuid.Valid(uuid.New()))
	assert.True(t, uuid.Valid("0190a8f2-7b4c-7d4e-9a1b-2c3d4e5f6a7b"))
	assert.False(t, uuid.Valid(""))
	assert.False(t, uuid.Valid("42"))
	assert.False(t, uuid.Valid("not-a-uuid"))
}
