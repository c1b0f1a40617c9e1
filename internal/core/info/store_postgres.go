// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package info

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/taibuivan/tagbook/internal/platform/apperr"
	"github.com/taibuivan/tagbook/internal/platform/database/schema"
	"github.com/taibuivan/tagbook/internal/platform/dberr"
	"github.com/taibuivan/tagbook/internal/platform/postgres"
)

const resource = "Catalog"

type PostgresRepository struct {
	db postgres.Querier
}

func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Stats(ctx context.Context) (*Stats, error) {
	countQuery := fmt.Sprintf(`SELECT (SELECT count(*) FROM %s) AS entries, (SELECT count(*) FROM %s) AS tags`,
		schema.Entries.Table, schema.Tags.Table)

	var stats Stats
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&stats.Entries, &stats.Tags); err != nil {
		return nil, dberr.Wrap(err, resource, "count_catalog")
	}

	localesQuery, args, err := postgres.Builder().
		Select(schema.TagNames.Locale).
		Distinct().
		From(schema.TagNames.Table).
		OrderBy(schema.TagNames.Locale).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("build list_locales: %w", err))
	}

	stats.Locales = make([]string, 0)
	if err := pgxscan.Select(ctx, repository.db, &stats.Locales, localesQuery, args...); err != nil {
		return nil, dberr.Wrap(err, resource, "list_locales")
	}

	return &stats, nil
}
