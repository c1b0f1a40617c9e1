// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tagbook/internal/core/tag"
	"github.com/taibuivan/tagbook/internal/platform/apperr"
)

// fakeRepository stands in for the database behind the service.
type fakeRepository struct {
	entries []*Entry
	err     error

	upserted      *Draft
	resolveLocale string
	displayLocale string
	filter        Filter
	deletedID     string
}

func (f *fakeRepository) Upsert(ctx context.Context, draft *Draft, resolveLocale, displayLocale string) (*Result, error) {
	f.upserted, f.resolveLocale, f.displayLocale = draft, resolveLocale, displayLocale
	if f.err != nil {
		return nil, f.err
	}

	status, id := StatusCreated, entryID
	if draft.ID != "" {
		status, id = StatusUpdated, draft.ID
	}
	return &Result{
		Status:      status,
		Entry:       &Entry{ID: id, Text: draft.Text, Tags: []*tag.Tag{{ID: tagA, Name: "greeting", Locale: "en"}}},
		CreatedTags: []string{tagA},
	}, nil
}

func (f *fakeRepository) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	f.filter = filter
	return f.entries, f.err
}

func (f *fakeRepository) GetByID(ctx context.Context, id, locale string) (*Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[0], nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.err
}

func passthrough(next http.Handler) http.Handler { return next }

func newHandler(repo *fakeRepository, tags *fakeTags) http.Handler {
	service := NewService(repo, "en", slog.New(slog.DiscardHandler))
	return NewHandler(service, tags, passthrough).Routes()
}

func do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))
	return recorder
}

type envelope struct {
	Data    json.RawMessage     `json:"data"`
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details"`
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return env
}

func TestHandler_CreateEntry(t *testing.T) {
	repo := &fakeRepository{}
	tags := &fakeTags{resolved: []*tag.Tag{{ID: tagA, Name: "greeting", Locale: "en"}, {ID: tagB, Name: "other", Locale: "en"}}}

	recorder := do(t, newHandler(repo, tags), http.MethodPost, "/", `{"text":"hello","tags":["greeting"]}`)

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var body struct {
		Entry Entry     `json:"entry"`
		Tags  []tag.Tag `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &body))
	assert.Equal(t, "hello", body.Entry.Text)
	assert.Len(t, body.Tags, 2)

	// No ?lang=: tags are created in the default locale, names shown by default.
	assert.Equal(t, "en", repo.resolveLocale)
	assert.Empty(t, repo.displayLocale)
	assert.Empty(t, tags.listFilter.Locale)
}

func TestHandler_CreateEntry_Failures(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		repoErr    error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{"missing text", "/", `{"tags":["x"]}`, nil, http.StatusBadRequest, "VALIDATION_ERROR", "missing text"},
		{"empty tags", "/", `{"text":"x","tags":[]}`, nil, http.StatusBadRequest, "VALIDATION_ERROR", "missing tag"},
		{"not json", "/", `hello`, nil, http.StatusBadRequest, "VALIDATION_ERROR", "bad format"},
		{"bad lang", "/?lang=%21%21", `{"text":"x","tags":["x"]}`, nil, http.StatusBadRequest, "VALIDATION_ERROR", "bad format"},
		{"client id", "/", `{"id":"` + entryID + `","text":"x","tags":["x"]}`, nil, http.StatusConflict, "CONFLICT", "Entry id is assigned by the server"},
		{"unknown tag id", "/", `{"text":"x","tags":[{"id":"` + tagA + `"}]}`, apperr.NotFound("Tag"), http.StatusNotFound, "NOT_FOUND", "Tag not found"},
		{"storage", "/", `{"text":"x","tags":["x"]}`, apperr.Internal(assert.AnError), http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{err: tt.repoErr}

			recorder := do(t, newHandler(repo, &fakeTags{}), http.MethodPost, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			env := decode(t, recorder)
			assert.Equal(t, tt.wantCode, env.Code)
			assert.Equal(t, tt.wantError, env.Error)
			if tt.repoErr == nil {
				assert.Nil(t, repo.upserted, "invalid payloads must not reach the store")
			}
		})
	}
}

func TestHandler_UpdateEntry(t *testing.T) {
	t.Run("path id wins", func(t *testing.T) {
		repo := &fakeRepository{}

		recorder := do(t, newHandler(repo, &fakeTags{}), http.MethodPut, "/"+entryID+"?lang=fr", `{"text":"x","tags":["y"]}`)

		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
		assert.Equal(t, entryID, repo.upserted.ID)
		assert.Equal(t, "fr", repo.resolveLocale)
		assert.Equal(t, "fr", repo.displayLocale)
	})

	t.Run("matching body id", func(t *testing.T) {
		repo := &fakeRepository{}

		recorder := do(t, newHandler(repo, &fakeTags{}), http.MethodPut, "/"+entryID, `{"id":"`+entryID+`","text":"x","tags":["y"]}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("mismatched body id", func(t *testing.T) {
		repo := &fakeRepository{}

		recorder := do(t, newHandler(repo, &fakeTags{}), http.MethodPut, "/"+entryID, `{"id":"`+tagA+`","text":"x","tags":["y"]}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Nil(t, repo.upserted)
	})

	t.Run("missing entry", func(t *testing.T) {
		repo := &fakeRepository{err: apperr.NotFound("Entry")}

		recorder := do(t, newHandler(repo, &fakeTags{}), http.MethodPut, "/"+entryID, `{"text":"x","tags":["y"]}`)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHandler_ListEntries(t *testing.T) {
	repo := &fakeRepository{entries: []*Entry{}}

	recorder := do(t, newHandler(repo, &fakeTags{}), http.MethodGet, "/?q=hel&tag="+tagA+"&lang=de-de", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, Filter{Query: "hel", TagID: tagA, Locale: "de-DE"}, repo.filter)
	assert.JSONEq(t, `{"data":[]}`, recorder.Body.String())
}

func TestHandler_GetEntry(t *testing.T) {
	repo := &fakeRepository{err: apperr.NotFound("Entry")}

	recorder := do(t, newHandler(repo, &fakeTags{}), http.MethodGet, "/"+entryID, "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Entry not found", decode(t, recorder).Error)
}

func TestHandler_DeleteEntry(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo := &fakeRepository{}

		recorder := do(t, newHandler(repo, &fakeTags{}), http.MethodDelete, "/"+entryID, "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"data":{"id":"`+entryID+`"}}`, recorder.Body.String())
		assert.Equal(t, entryID, repo.deletedID)
	})

	t.Run("absent", func(t *testing.T) {
		repo := &fakeRepository{err: apperr.NotFound("Entry")}

		recorder := do(t, newHandler(repo, &fakeTags{}), http.MethodDelete, "/"+entryID, "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
