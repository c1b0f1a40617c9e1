// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/tagbook/internal/platform/constants"
	"github.com/taibuivan/tagbook/internal/platform/validate"
	"github.com/taibuivan/tagbook/pkg/locale"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(ctx context.Context, filter Filter) ([]*Tag, error) {
	return service.repo.List(ctx, filter)
}

func (service *Service) Get(ctx context.Context, id, locale string) (*Tag, error) {
	return service.repo.GetByID(ctx, id, locale)
}

// SetName adds or replaces one locale's display name on an existing tag.
func (service *Service) SetName(ctx context.Context, id, rawLocale, rawName string) (*Tag, error) {
	name := norm.NFC.String(strings.TrimSpace(rawName))

	v := &validate.Validator{}
	v.Required("name", name).
		MaxLen("name", name, constants.MaxTagNameLength).
		Required("locale", rawLocale).
		Locale("locale", rawLocale)
	if err := v.ErrAs(validate.MsgBadFormat); err != nil {
		return nil, err
	}

	canonical, _ := locale.Parse(rawLocale)

	tag, err := service.repo.SetName(ctx, id, canonical, name)
	if err != nil {
		return nil, err
	}

	service.logger.Info("tag_name_set",
		slog.String("tag_id", tag.ID),
		slog.String("locale", canonical),
	)

	return tag, nil
}
