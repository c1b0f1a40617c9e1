// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tagbook/pkg/locale"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "en", "en", false},
		{"region_lowercase", "en-us", "en-US", false},
		{"underscore", "pt_br", "pt-BR", false},
		{"padded", "  fr ", "fr", false},
		{"empty", "", "", true},
		{"garbage", "not a locale!", "", true},
		{"undetermined", "und", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locale.Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, locale.ErrInvalid)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLenient(t *testing.T) {
	assert.Equal(t, "de", locale.Lenient("DE"))
	assert.Equal(t, "", locale.Lenient("%%%"))
	assert.Equal(t, "", locale.Lenient(""))
}
