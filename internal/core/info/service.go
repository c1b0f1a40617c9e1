// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package info

import (
	"context"

	"github.com/taibuivan/tagbook/internal/platform/constants"
)

type Service struct {
	repo          Repository
	defaultLocale string
}

func NewService(repo Repository, defaultLocale string) *Service {
	return &Service{repo: repo, defaultLocale: defaultLocale}
}

func (service *Service) Info(ctx context.Context) (*Info, error) {
	stats, err := service.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &Info{
		Name:          constants.AppName,
		Version:       constants.AppVersion,
		DefaultLocale: service.defaultLocale,
		Entries:       stats.Entries,
		Tags:          stats.Tags,
		Locales:       stats.Locales,
	}, nil
}
