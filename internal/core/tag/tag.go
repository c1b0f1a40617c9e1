// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tag owns tags and their per-locale display names.

A tag is identified by its id only. Names are a lookup convenience: resolving a
name that no tag carries creates the tag, and the unique index on
(locale, lower(name)) keeps that creation idempotent under concurrent callers.
*/
package tag

import "time"

// Tag is a tag with its display name resolved for one locale.
type Tag struct {
	ID string `json:"id" db:"id"`

	// Name is the display name in Locale.
	Name string `json:"name" db:"name"`

	// Locale is the locale Name was taken from. It differs from the requested
	// locale when the tag has no name there and fell back to DefaultLocale.
	Locale string `json:"locale" db:"locale"`

	DefaultLocale string    `json:"-" db:"default_locale"`
	CreatedAt     time.Time `json:"-" db:"created_at"`

	// Created is set by Resolve when the call inserted the tag.
	Created bool `json:"-" db:"-"`
}

// Ref points at a tag either by id or by name.
//
// When ID is set, Name and Locale are ignored.
type Ref struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Locale string `json:"locale,omitempty"`
}

// ByID reports whether the reference resolves by id.
func (ref Ref) ByID() bool {
	return ref.ID != ""
}

// Filter narrows a tag listing.
type Filter struct {
	// Query keeps tags whose resolved name contains it, case-insensitively.
	Query string

	// Locale selects the display name. Empty means the default-locale name.
	Locale string
}
