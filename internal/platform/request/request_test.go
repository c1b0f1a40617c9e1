// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tagbook/internal/platform/apperr"
	"github.com/taibuivan/tagbook/internal/platform/constants"
	requestutil "github.com/taibuivan/tagbook/internal/platform/request"
)

func TestReadLocale(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"", ""},
		{"?lang=fr", "fr"},
		{"?lang=pt_br", "pt-BR"},
		{"?lang=%21%21", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/tags"+tt.query, nil)
			assert.Equal(t, tt.want, requestutil.ReadLocale(request))
		})
	}
}

func TestWriteLocale(t *testing.T) {
	request := httptest.NewRequest("POST", "/entries?lang=de", nil)
	got, err := requestutil.WriteLocale(request)
	require.NoError(t, err)
	assert.Equal(t, "de", got)

	request = httptest.NewRequest("POST", "/entries", nil)
	got, err = requestutil.WriteLocale(request)
	require.NoError(t, err)
	assert.Empty(t, got)

	request = httptest.NewRequest("POST", "/entries?lang=%21%21", nil)
	_, err = requestutil.WriteLocale(request)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	request := httptest.NewRequest("PUT", "/", strings.NewReader(`{"name":"Sport"}`))
	require.NoError(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target))
	assert.Equal(t, "Sport", target.Name)

	request = httptest.NewRequest("PUT", "/", strings.NewReader(`{"name":`))
	err := requestutil.DecodeJSON(httptest.NewRecorder(), request, &target)
	assert.Equal(t, "bad format", apperr.As(err).Message)
}

func TestBody_TooLarge(t *testing.T) {
	huge := strings.Repeat("a", constants.MaxBodyBytes+1)
	request := httptest.NewRequest("POST", "/", strings.NewReader(huge))

	_, err := requestutil.Body(httptest.NewRecorder(), request)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}
