// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tagbook/internal/platform/apperr"
	"github.com/taibuivan/tagbook/internal/platform/validate"
)

type Service struct {
	repo          Repository
	defaultLocale string
	logger        *slog.Logger
}

// NewService builds the entry service. Tags created without an explicit
// locale are named in defaultLocale.
func NewService(repo Repository, defaultLocale string, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		defaultLocale: defaultLocale,
		logger:        logger,
	}
}

func (service *Service) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	return service.repo.List(ctx, filter)
}

func (service *Service) Get(ctx context.Context, id, locale string) (*Entry, error) {
	return service.repo.GetByID(ctx, id, locale)
}

// Create inserts a new entry. Clients never choose ids, so a draft that
// carries one is rejected with CONFLICT.
func (service *Service) Create(ctx context.Context, draft *Draft, locale string) (*Result, error) {
	if draft.ID != "" {
		return nil, apperr.Conflict("Entry id is assigned by the server")
	}
	return service.UpdateOrAdd(ctx, draft, locale)
}

// Update replaces the text and tag set of entry id. A body id, when present,
// must match the path id.
func (service *Service) Update(ctx context.Context, id string, draft *Draft, locale string) (*Result, error) {
	if draft.ID != "" && draft.ID != id {
		return nil, validate.FieldError(validate.MsgBadFormat, "id", "id mismatch")
	}
	draft.ID = id
	return service.UpdateOrAdd(ctx, draft, locale)
}

// UpdateOrAdd inserts draft when it has no id and replaces the entry otherwise.
// locale is the request locale; it names newly created tags (falling back to
// the default locale) and selects the display names of the returned entry.
func (service *Service) UpdateOrAdd(ctx context.Context, draft *Draft, locale string) (*Result, error) {
	resolveLocale := locale
	if resolveLocale == "" {
		resolveLocale = service.defaultLocale
	}

	result, err := service.repo.Upsert(ctx, draft, resolveLocale, locale)
	if err != nil {
		return nil, err
	}

	for _, tagID := range result.CreatedTags {
		service.logger.Info("tag_created",
			slog.String("tag_id", tagID),
			slog.String("entry_id", result.Entry.ID),
		)
	}

	event := "entry_updated"
	if result.Status == StatusCreated {
		event = "entry_created"
	}
	service.logger.Info(event,
		slog.String("entry_id", result.Entry.ID),
		slog.Int("tags", len(result.Entry.Tags)),
	)

	return result, nil
}

func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("entry_deleted", slog.String("entry_id", id))
	return nil
}
