// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tagbook/internal/platform/apperr"
	"github.com/taibuivan/tagbook/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "text", "hello", false},
		{"empty_string", "text", "", true},
		{"whitespace_only", "text", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_MaxLen counts runes, not bytes.
*/
func TestValidator_MaxLen(t *testing.T) {
	v := &validate.Validator{}
	v.MaxLen("name", "日本語", 3)
	assert.False(t, v.HasErrors())

	v.MaxLen("name", strings.Repeat("a", 4), 3)
	assert.True(t, v.HasErrors())
}

/*
TestValidator_Locale checks the BCP 47 rule.
*/
func TestValidator_Locale(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"empty_is_optional", "", true},
		{"language_only", "fr", true},
		{"language_region", "pt-BR", true},
		{"garbage", "not a locale!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Locale("locale", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_ErrAs carries the caller's summary message.
*/
func TestValidator_ErrAs(t *testing.T) {
	err := (&validate.Validator{}).Required("text", "").ErrAs(validate.MsgMissingText)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "missing text", ae.Message)
	assert.Equal(t, 400, ae.HTTPStatus)
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("text", "").
		MaxLen("name", "toolong", 3).
		Custom("tags", true, "Maximum 64 tags").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Len(t, ae.Details, 3)
	assert.Equal(t, validate.MsgFailed, ae.Message)
}
