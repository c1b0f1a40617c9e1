// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import "context"

// Repository is the persistence contract for entries and their links.
type Repository interface {
	// Upsert inserts draft when it has no id and replaces the existing entry
	// otherwise. New tags are created in resolveLocale; the returned entry
	// carries names in displayLocale.
	Upsert(ctx context.Context, draft *Draft, resolveLocale, displayLocale string) (*Result, error)

	List(ctx context.Context, filter Filter) ([]*Entry, error)
	GetByID(ctx context.Context, id, locale string) (*Entry, error)
	Delete(ctx context.Context, id string) error
}
