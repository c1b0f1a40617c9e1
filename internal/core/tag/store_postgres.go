// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/tagbook/internal/platform/apperr"
	"github.com/taibuivan/tagbook/internal/platform/database/schema"
	"github.com/taibuivan/tagbook/internal/platform/dberr"
	"github.com/taibuivan/tagbook/internal/platform/postgres"
	"github.com/taibuivan/tagbook/pkg/uuid"
)

const resource = "Tag"

type PostgresRepository struct {
	db postgres.DB
}

func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectResolved selects tags with the display name for locale, falling back
// to the default-locale name. An empty locale never matches a stored name, so
// it always yields the default-locale name.
func selectResolved(locale string) sq.SelectBuilder {
	return postgres.Builder().
		Select(
			"t.id",
			"COALESCE(req.name, def.name) AS name",
			"COALESCE(req.locale, t.default_locale) AS locale",
			"t.default_locale",
			"t.created_at",
		).
		From(schema.Tags.Table + " t").
		Join(schema.TagNames.Table + " def ON def.tag_id = t.id AND def.locale = t.default_locale").
		LeftJoin(schema.TagNames.Table+" req ON req.tag_id = t.id AND req.locale = ?", locale)
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter) ([]*Tag, error) {
	builder := selectResolved(filter.Locale).OrderBy("t.created_at", "t.id")
	if filter.Query != "" {
		builder = builder.Where("strpos(lower(COALESCE(req.name, def.name)), lower(?)) > 0", filter.Query)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("build list_tags: %w", err))
	}

	tags := make([]*Tag, 0)
	if err := pgxscan.Select(ctx, repository.db, &tags, query, args...); err != nil {
		return nil, dberr.Wrap(err, resource, "list_tags")
	}

	return tags, nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id, locale string) (*Tag, error) {
	return getByID(ctx, repository.db, id, locale)
}

func getByID(ctx context.Context, querier pgxscan.Querier, id, locale string) (*Tag, error) {
	// A malformed id cannot match; inside a transaction the 22P02 would also
	// abort every later statement.
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resource)
	}

	query, args, err := selectResolved(locale).Where(sq.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("build get_tag_by_id: %w", err))
	}

	return getOne(ctx, querier, "get_tag_by_id", query, args...)
}

func getOne(ctx context.Context, querier pgxscan.Querier, action, query string, args ...any) (*Tag, error) {
	var tag Tag
	if err := pgxscan.Get(ctx, querier, &tag, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperr.NotFound(resource)
		}
		return nil, dberr.Wrap(err, resource, action)
	}
	return &tag, nil
}

// # Resolution

// Resolve maps a reference to a canonical tag on tx.
//
// A name reference matches any locale's name case-insensitively; when several
// tags match, the oldest wins. An unmatched name creates a tag whose default
// locale is the reference's locale, or locale when the reference has none.
func (repository *PostgresRepository) Resolve(ctx context.Context, tx pgx.Tx, ref Ref, locale string) (*Tag, error) {
	if ref.ByID() {
		return getByID(ctx, tx, ref.ID, locale)
	}

	locale = refLocale(ref, locale)

	found, err := findByName(ctx, tx, ref.Name, locale)
	if err == nil {
		return found, nil
	}
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	created, err := create(ctx, tx, ref.Name, locale)
	if err == nil {
		return created, nil
	}

	// A concurrent transaction committed the same (locale, name) first; its
	// tag is now visible to a fresh statement.
	if dberr.IsUniqueViolation(err, schema.TagNames.NameKey) {
		return findByName(ctx, tx, ref.Name, locale)
	}

	return nil, dberr.Wrap(err, resource, "create_tag")
}

// ResolveMany resolves refs and drops repeats of the same tag, keeping the
// first occurrence in ref order.
//
// Existing tags are looked up first. Unmatched names are then created sorted
// by lower-cased name and locale, so writers creating overlapping sets of new
// names take the unique-index locks in the same sequence and cannot deadlock.
func (repository *PostgresRepository) ResolveMany(ctx context.Context, tx pgx.Tx, refs []Ref, locale string) ([]*Tag, error) {
	resolved := make([]*Tag, len(refs))
	var pending []int

	for i, ref := range refs {
		if ref.ByID() {
			tag, err := getByID(ctx, tx, ref.ID, locale)
			if err != nil {
				return nil, err
			}
			resolved[i] = tag
			continue
		}

		tag, err := findByName(ctx, tx, ref.Name, refLocale(ref, locale))
		switch {
		case err == nil:
			resolved[i] = tag
		case apperr.HasCode(err, apperr.CodeNotFound):
			pending = append(pending, i)
		default:
			return nil, err
		}
	}

	slices.SortStableFunc(pending, func(a, b int) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(refs[a].Name), strings.ToLower(refs[b].Name)),
			cmp.Compare(refLocale(refs[a], locale), refLocale(refs[b], locale)),
		)
	})

	// An earlier creation in this batch may already match a later ref, so each
	// pending ref goes through the full lookup again.
	for _, i := range pending {
		tag, err := repository.Resolve(ctx, tx, refs[i], locale)
		if err != nil {
			return nil, err
		}
		resolved[i] = tag
	}

	tags := make([]*Tag, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, tag := range resolved {
		if _, dup := seen[tag.ID]; dup {
			continue
		}
		seen[tag.ID] = struct{}{}
		tags = append(tags, tag)
	}

	return tags, nil
}

func refLocale(ref Ref, fallback string) string {
	if ref.Locale != "" {
		return ref.Locale
	}
	return fallback
}

// nameMatch picks the oldest tag carrying the bound name in any locale.
var nameMatch = fmt.Sprintf(`t.%[1]s = (
	SELECT n.%[2]s FROM %[3]s n
	JOIN %[4]s o ON o.%[1]s = n.%[2]s
	WHERE lower(n.%[5]s) = lower(?)
	ORDER BY o.%[6]s, o.%[1]s
	LIMIT 1)`,
	schema.Tags.ID, schema.TagNames.TagID, schema.TagNames.Table,
	schema.Tags.Table, schema.TagNames.Name, schema.Tags.CreatedAt)

func findByName(ctx context.Context, tx pgx.Tx, name, locale string) (*Tag, error) {
	query, args, err := selectResolved(locale).
		Where(nameMatch, name).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("build find_tag_by_name: %w", err))
	}

	return getOne(ctx, tx, "find_tag_by_name", query, args...)
}

// create inserts the tag and its first name inside a savepoint, so a unique
// violation leaves the caller's transaction usable. The raw driver error is
// returned for the caller to classify.
func create(ctx context.Context, tx pgx.Tx, name, locale string) (*Tag, error) {
	tag := &Tag{
		ID:            uuid.New(),
		Name:          name,
		Locale:        locale,
		DefaultLocale: locale,
		Created:       true,
	}

	err := postgres.WithSavepoint(ctx, tx, func(sp pgx.Tx) error {
		query, args, err := postgres.Builder().
			Insert(schema.Tags.Table).
			Columns(schema.Tags.ID, schema.Tags.DefaultLocale).
			Values(tag.ID, locale).
			Suffix("RETURNING " + schema.Tags.CreatedAt).
			ToSql()
		if err != nil {
			return err
		}
		if err := sp.QueryRow(ctx, query, args...).Scan(&tag.CreatedAt); err != nil {
			return err
		}

		query, args, err = postgres.Builder().
			Insert(schema.TagNames.Table).
			Columns(schema.TagNames.TagID, schema.TagNames.Locale, schema.TagNames.Name).
			Values(tag.ID, locale, name).
			ToSql()
		if err != nil {
			return err
		}
		_, err = sp.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return nil, err
	}

	return tag, nil
}

// # Names

// SetName adds or replaces the name of tag id in locale.
func (repository *PostgresRepository) SetName(ctx context.Context, id, locale, name string) (*Tag, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resource)
	}

	err := postgres.RunInTx(ctx, repository.db, func(tx pgx.Tx) error {
		lockQuery, lockArgs, err := postgres.Builder().
			Select(schema.Tags.ID).
			From(schema.Tags.Table).
			Where(sq.Eq{schema.Tags.ID: id}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return err
		}

		var locked string
		if err := tx.QueryRow(ctx, lockQuery, lockArgs...).Scan(&locked); err != nil {
			return dberr.Wrap(err, resource, "lock_tag")
		}

		upsertQuery, upsertArgs, err := postgres.Builder().
			Insert(schema.TagNames.Table).
			Columns(schema.TagNames.TagID, schema.TagNames.Locale, schema.TagNames.Name).
			Values(id, locale, name).
			Suffix("ON CONFLICT (tag_id, locale) DO UPDATE SET name = EXCLUDED.name").
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, upsertQuery, upsertArgs...); err != nil {
			if dberr.IsUniqueViolation(err, schema.TagNames.NameKey) {
				return apperr.Conflict(fmt.Sprintf("Tag name %q is already used in %s", name, locale))
			}
			return dberr.Wrap(err, resource, "set_tag_name")
		}

		return nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, resource, "set_tag_name")
	}

	return repository.GetByID(ctx, id, locale)
}
