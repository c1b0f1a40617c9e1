// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/tagbook/internal/core/tag"
	"github.com/taibuivan/tagbook/internal/platform/apperr"
	"github.com/taibuivan/tagbook/internal/platform/database/schema"
	"github.com/taibuivan/tagbook/internal/platform/dberr"
	"github.com/taibuivan/tagbook/internal/platform/postgres"
	"github.com/taibuivan/tagbook/internal/platform/validate"
	"github.com/taibuivan/tagbook/pkg/slice"
	"github.com/taibuivan/tagbook/pkg/uuid"
)

const resource = "Entry"

// tagsAggregate hydrates an entry's tags, in link order, with names resolved
// for the locale bound to its placeholder.
var tagsAggregate = fmt.Sprintf(`COALESCE((
	SELECT json_agg(json_build_object(
		'id', t.id,
		'name', COALESCE(req.name, def.name),
		'locale', COALESCE(req.locale, t.default_locale)
	) ORDER BY et.%[4]s)
	FROM %[1]s et
	JOIN %[2]s t ON t.id = et.%[5]s
	JOIN %[3]s def ON def.tag_id = t.id AND def.locale = t.default_locale
	LEFT JOIN %[3]s req ON req.tag_id = t.id AND req.locale = ?
	WHERE et.%[6]s = e.id
), '[]') AS tags`,
	schema.EntryTags.Table, schema.Tags.Table, schema.TagNames.Table,
	schema.EntryTags.Seq, schema.EntryTags.TagID, schema.EntryTags.EntryID)

// taggedWith keeps entries linked to the bound tag id.
var taggedWith = fmt.Sprintf("EXISTS (SELECT 1 FROM %s f WHERE f.%s = e.id AND f.%s = ?)",
	schema.EntryTags.Table, schema.EntryTags.EntryID, schema.EntryTags.TagID)

type entryRow struct {
	ID        string    `db:"id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	Tags      []byte    `db:"tags"`
}

func (row *entryRow) toEntry() (*Entry, error) {
	entry := &Entry{
		ID:        row.ID,
		Text:      row.Text,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Tags:      make([]*tag.Tag, 0),
	}
	if len(row.Tags) > 0 {
		if err := json.Unmarshal(row.Tags, &entry.Tags); err != nil {
			return nil, apperr.Internal(fmt.Errorf("decode entry tags: %w", err))
		}
	}
	return entry, nil
}

type PostgresRepository struct {
	db   postgres.DB
	tags tag.Repository
}

func NewPostgresRepository(db postgres.DB, tags tag.Repository) *PostgresRepository {
	return &PostgresRepository{db: db, tags: tags}
}

func selectEntries(locale string) sq.SelectBuilder {
	return postgres.Builder().
		Select("e.id", "e.text", "e.created_at", "e.updated_at").
		Column(tagsAggregate, locale).
		From(schema.Entries.Table + " e")
}

// # Query

func (repository *PostgresRepository) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	entries := make([]*Entry, 0)

	builder := selectEntries(filter.Locale).OrderBy("e.created_at", "e.id")
	if filter.Query != "" {
		builder = builder.Where("strpos(lower(e.text), lower(?)) > 0", filter.Query)
	}
	if filter.TagID != "" {
		// A malformed tag id matches nothing.
		if !uuid.Valid(filter.TagID) {
			return entries, nil
		}
		builder = builder.Where(taggedWith, filter.TagID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("build list_entries: %w", err))
	}

	var rows []*entryRow
	if err := pgxscan.Select(ctx, repository.db, &rows, query, args...); err != nil {
		return nil, dberr.Wrap(err, resource, "list_entries")
	}

	for _, row := range rows {
		entry, err := row.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id, locale string) (*Entry, error) {
	return getByID(ctx, repository.db, id, locale)
}

func getByID(ctx context.Context, querier pgxscan.Querier, id, locale string) (*Entry, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resource)
	}

	query, args, err := selectEntries(locale).Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("build get_entry_by_id: %w", err))
	}

	var row entryRow
	if err := pgxscan.Get(ctx, querier, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperr.NotFound(resource)
		}
		return nil, dberr.Wrap(err, resource, "get_entry_by_id")
	}

	return row.toEntry()
}

// # Upsert

// Upsert writes the entry and its links in one transaction. In update mode the
// entry row is locked first, so concurrent updates of one id serialize and the
// last commit wins.
func (repository *PostgresRepository) Upsert(ctx context.Context, draft *Draft, resolveLocale, displayLocale string) (*Result, error) {
	result := &Result{Status: StatusCreated}
	if draft.ID != "" {
		result.Status = StatusUpdated
		if !uuid.Valid(draft.ID) {
			return nil, apperr.NotFound(resource)
		}
	}

	err := postgres.RunInTx(ctx, repository.db, func(tx pgx.Tx) error {
		if result.Status == StatusUpdated {
			if err := lockEntry(ctx, tx, draft.ID); err != nil {
				return err
			}
		}

		tags, err := repository.tags.ResolveMany(ctx, tx, draft.Tags, resolveLocale)
		if err != nil {
			return err
		}
		if len(tags) == 0 {
			return validate.FieldError(validate.MsgMissingTag, "tags", "At least one tag is required")
		}

		tagIDs := slice.Map(tags, tagIDOf)
		result.CreatedTags = slice.Map(slice.Filter(tags, func(resolved *tag.Tag) bool {
			return resolved.Created
		}), tagIDOf)

		entryID := draft.ID
		if result.Status == StatusCreated {
			entryID = uuid.New()
			if err := insertEntry(ctx, tx, entryID, draft.Text); err != nil {
				return err
			}
			if err := insertLinks(ctx, tx, entryID, tagIDs); err != nil {
				return err
			}
		} else {
			if err := replaceEntry(ctx, tx, entryID, draft.Text, tagIDs); err != nil {
				return err
			}
		}

		result.Entry, err = getByID(ctx, tx, entryID, displayLocale)
		return err
	})
	if err != nil {
		return nil, dberr.Wrap(err, resource, "upsert_entry")
	}

	return result, nil
}

func lockEntry(ctx context.Context, tx pgx.Tx, id string) error {
	query, args, err := postgres.Builder().
		Select(schema.Entries.ID).
		From(schema.Entries.Table).
		Where(sq.Eq{schema.Entries.ID: id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return err
	}

	var locked string
	if err := tx.QueryRow(ctx, query, args...).Scan(&locked); err != nil {
		return dberr.Wrap(err, resource, "lock_entry")
	}
	return nil
}

func insertEntry(ctx context.Context, tx pgx.Tx, id, text string) error {
	query, args, err := postgres.Builder().
		Insert(schema.Entries.Table).
		Columns(schema.Entries.ID, schema.Entries.Text).
		Values(id, text).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return dberr.Wrap(err, resource, "insert_entry")
	}
	return nil
}

// replaceEntry swaps the text and applies the link diff. Links present in both
// the old and the new set are left alone.
func replaceEntry(ctx context.Context, tx pgx.Tx, id, text string, tagIDs []string) error {
	query, args, err := postgres.Builder().
		Update(schema.Entries.Table).
		Set(schema.Entries.Text, text).
		Set(schema.Entries.UpdatedAt, sq.Expr("clock_timestamp()")).
		Where(sq.Eq{schema.Entries.ID: id}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return dberr.Wrap(err, resource, "update_entry")
	}

	current, err := loadLinks(ctx, tx, id)
	if err != nil {
		return err
	}

	removed, added := diffLinks(current, tagIDs)

	if len(removed) > 0 {
		query, args, err := postgres.Builder().
			Delete(schema.EntryTags.Table).
			Where(sq.Eq{schema.EntryTags.EntryID: id, schema.EntryTags.TagID: removed}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return dberr.Wrap(err, resource, "delete_links")
		}
	}

	return insertLinks(ctx, tx, id, added)
}

func loadLinks(ctx context.Context, tx pgx.Tx, entryID string) ([]string, error) {
	query, args, err := postgres.Builder().
		Select(schema.EntryTags.TagID).
		From(schema.EntryTags.Table).
		Where(sq.Eq{schema.EntryTags.EntryID: entryID}).
		OrderBy(schema.EntryTags.Seq).
		ToSql()
	if err != nil {
		return nil, err
	}

	var tagIDs []string
	if err := pgxscan.Select(ctx, tx, &tagIDs, query, args...); err != nil {
		return nil, dberr.Wrap(err, resource, "load_links")
	}
	return tagIDs, nil
}

func insertLinks(ctx context.Context, tx pgx.Tx, entryID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	builder := postgres.Builder().
		Insert(schema.EntryTags.Table).
		Columns(schema.EntryTags.EntryID, schema.EntryTags.TagID)
	for _, tagID := range tagIDs {
		builder = builder.Values(entryID, tagID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return dberr.Wrap(err, resource, "insert_links")
	}
	return nil
}

// diffLinks returns the tag ids only in current and the ids only in next,
// each in the order of its source slice.
func diffLinks(current, next []string) (removed, added []string) {
	inCurrent := idSet(current)
	inNext := idSet(next)

	removed = slice.Filter(current, func(id string) bool {
		_, keep := inNext[id]
		return !keep
	})
	added = slice.Filter(next, func(id string) bool {
		_, exists := inCurrent[id]
		return !exists
	})
	return removed, added
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func tagIDOf(resolved *tag.Tag) string { return resolved.ID }

// # Deletion

// Delete removes the entry's links and then the entry. Tags are kept even if
// no entry references them any more.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(resource)
	}

	err := postgres.RunInTx(ctx, repository.db, func(tx pgx.Tx) error {
		linksQuery, linksArgs, err := postgres.Builder().
			Delete(schema.EntryTags.Table).
			Where(sq.Eq{schema.EntryTags.EntryID: id}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, linksQuery, linksArgs...); err != nil {
			return dberr.Wrap(err, resource, "delete_links")
		}

		entryQuery, entryArgs, err := postgres.Builder().
			Delete(schema.Entries.Table).
			Where(sq.Eq{schema.Entries.ID: id}).
			ToSql()
		if err != nil {
			return err
		}
		deleted, err := tx.Exec(ctx, entryQuery, entryArgs...)
		if err != nil {
			return dberr.Wrap(err, resource, "delete_entry")
		}
		if deleted.RowsAffected() == 0 {
			return apperr.NotFound(resource)
		}
		return nil
	})

	return dberr.Wrap(err, resource, "delete_entry")
}
