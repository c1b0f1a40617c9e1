// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package entry catalogs text entries and their tag links.

An entry is written as a whole: [Service.Create] and [Service.Update] replace
the text and the full tag set in one transaction, resolving tag references
through the tag package on the same transaction. Only the link rows that
changed are touched, so unchanged links keep their creation time.
*/
package entry

import (
	"time"

	"github.com/taibuivan/tagbook/internal/core/tag"
)

// Entry is a persisted entry with its tags resolved for one locale.
type Entry struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Tags      []*tag.Tag `json:"tags"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Draft is a validated entry payload. An empty ID means a new entry.
type Draft struct {
	ID   string
	Text string
	Tags []tag.Ref
}

// Status tells whether an upsert inserted or replaced the entry.
type Status string

const (
	StatusCreated Status = "created"
	StatusUpdated Status = "updated"
)

// Result is the outcome of an upsert.
type Result struct {
	Status Status
	Entry  *Entry

	// CreatedTags lists the ids of tags the upsert had to create.
	CreatedTags []string
}

// Filter narrows an entry listing.
type Filter struct {
	// Query keeps entries whose text contains it, case-insensitively.
	Query string

	// TagID keeps entries linked to that tag.
	TagID string

	// Locale selects tag display names. Empty means default-locale names.
	Locale string
}
