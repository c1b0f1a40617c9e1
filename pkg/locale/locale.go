// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package locale canonicalizes BCP 47 language tags used to key tag names.
//
// "EN_us", "en-US" and "en-us" all map to "en-US", so the same locale can
// never be stored twice under different spellings.
package locale

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// ErrInvalid is returned for input that is not a well-formed language tag.
var ErrInvalid = errors.New("locale: invalid language tag")

// Parse returns the canonical form of raw.
func Parse(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalid
	}

	tag, err := language.Parse(raw)
	if err != nil {
		return "", ErrInvalid
	}

	if tag == language.Und {
		return "", ErrInvalid
	}

	return tag.String(), nil
}

// Lenient returns the canonical form of raw, or "" when raw is empty or
// malformed. Read paths use it so a bad ?lang= falls back to default names.
func Lenient(raw string) string {
	canonical, err := Parse(raw)
	if err != nil {
		return ""
	}
	return canonical
}
