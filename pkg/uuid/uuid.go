// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the time-ordered identifiers used for entries and tags.

Version 7 values sort by creation time (millisecond precision), so new rows
land at the right edge of the primary key B-tree.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s is a textual UUID PostgreSQL would accept.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
