// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository is the persistence contract for tags.
//
// Resolve and ResolveMany run on a caller-owned transaction so that tags created
// while resolving commit or roll back together with the caller's writes.
type Repository interface {
	Resolve(ctx context.Context, tx pgx.Tx, ref Ref, locale string) (*Tag, error)
	ResolveMany(ctx context.Context, tx pgx.Tx, refs []Ref, locale string) ([]*Tag, error)

	List(ctx context.Context, filter Filter) ([]*Tag, error)
	GetByID(ctx context.Context, id, locale string) (*Tag, error)
	SetName(ctx context.Context, id, locale, name string) (*Tag, error)
}
