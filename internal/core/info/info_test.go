// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package info

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tagbook/internal/platform/apperr"
)

func TestPostgresRepository_Stats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT \(SELECT count\(\*\) FROM entries\) AS entries`).
		WillReturnRows(pgxmock.NewRows([]string{"entries", "tags"}).AddRow(int64(3), int64(5)))
	mock.ExpectQuery(`SELECT DISTINCT locale FROM tag_names ORDER BY locale`).
		WillReturnRows(pgxmock.NewRows([]string{"locale"}).AddRow("en").AddRow("fr"))

	stats, err := NewPostgresRepository(mock).Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &Stats{Entries: 3, Tags: 5, Locales: []string{"en", "fr"}}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type fakeRepository struct {
	stats *Stats
	err   error
}

func (f fakeRepository) Stats(ctx context.Context) (*Stats, error) {
	return f.stats, f.err
}

func TestHandler_GetInfo(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		service := NewService(fakeRepository{stats: &Stats{Entries: 1, Tags: 2, Locales: []string{"en"}}}, "en")

		recorder := httptest.NewRecorder()
		NewHandler(service).GetInfo(recorder, httptest.NewRequest(http.MethodGet, "/info", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"data":{
			"name":"tagbook-api",
			"version":"0.1.0-dev",
			"defaultLocale":"en",
			"entries":1,
			"tags":2,
			"locales":["en"]
		}}`, recorder.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		service := NewService(fakeRepository{err: apperr.Internal(errors.New("down"))}, "en")

		recorder := httptest.NewRecorder()
		NewHandler(service).GetInfo(recorder, httptest.NewRequest(http.MethodGet, "/info", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "down")
	})
}
