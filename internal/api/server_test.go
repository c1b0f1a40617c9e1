// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tagbook/internal/core/entry"
	"github.com/taibuivan/tagbook/internal/core/info"
	"github.com/taibuivan/tagbook/internal/core/tag"
	"github.com/taibuivan/tagbook/internal/platform/config"
	"github.com/taibuivan/tagbook/internal/platform/middleware"
)

type statsRepository struct{}

func (statsRepository) Stats(context.Context) (*info.Stats, error) {
	return &info.Stats{Entries: 2, Tags: 3, Locales: []string{"en"}}, nil
}

type tagRepository struct{ tag.Repository }

func (tagRepository) List(context.Context, tag.Filter) ([]*tag.Tag, error) {
	return []*tag.Tag{{ID: "t1", Name: "greeting", Locale: "en"}}, nil
}

type entryRepository struct{ entry.Repository }

func (entryRepository) List(context.Context, entry.Filter) ([]*entry.Entry, error) {
	return []*entry.Entry{{ID: "e1", Text: "hello"}}, nil
}

type limiter struct{ allowed bool }

func (l limiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return l.allowed, time.Second, nil
}

type keyRecorder struct {
	mu   sync.Mutex
	keys []string
}

func (k *keyRecorder) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys = append(k.keys, key)
	return true, 0, nil
}

func newTestServer(t *testing.T, allowed bool, guarded bool, deps HealthDependencies) http.Handler {
	t.Helper()
	cfg := &config.Config{ServerPort: "0", Environment: "test"}
	return buildServer(t, cfg, limiter{allowed: allowed}, guarded, deps)
}

func buildServer(t *testing.T, cfg *config.Config, rateLimiter middleware.Limiter, guarded bool, deps HealthDependencies) http.Handler {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	guard := middleware.WriteGuard(guarded)

	tagService := tag.NewService(tagRepository{}, logger)
	liveness, readiness := NewHealthHandlers(deps, logger)

	server := NewServer(cfg, logger, rateLimiter, nil, Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Info:      info.NewHandler(info.NewService(statsRepository{}, "en")),
		Tag:       tag.NewHandler(tagService, guard),
		Entry:     entry.NewHandler(entry.NewService(entryRepository{}, "en", logger), tagService, guard),
	})
	return server.Handler()
}

func serve(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
	return recorder
}

func TestServer_Routes(t *testing.T) {
	handler := newTestServer(t, true, false, HealthDependencies{})

	tests := []struct {
		path     string
		contains string
	}{
		{"/health", `"ok"`},
		{"/info", `"tagbook-api"`},
		{"/api/v1/info", `"tagbook-api"`},
		{"/tags", `"greeting"`},
		{"/api/v1/tags", `"greeting"`},
		{"/entries", `"hello"`},
		{"/api/v1/entries", `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			recorder := serve(handler, http.MethodGet, tt.path, "")
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.contains)
			assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
		})
	}
}

func TestServer_RateLimited(t *testing.T) {
	handler := newTestServer(t, false, false, HealthDependencies{})

	recorder := serve(handler, http.MethodGet, "/entries", "")
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "1", recorder.Header().Get("Retry-After"))
}

func TestServer_RateLimitKey(t *testing.T) {
	rotate := func(handler http.Handler) {
		for _, forwarded := range []string{"1.1.1.1", "2.2.2.2"} {
			request := httptest.NewRequest(http.MethodGet, "/health", nil)
			request.RemoteAddr = "192.0.2.7:4000"
			request.Header.Set("X-Forwarded-For", forwarded)
			handler.ServeHTTP(httptest.NewRecorder(), request)
		}
	}

	t.Run("untrusted headers are ignored", func(t *testing.T) {
		keys := &keyRecorder{}
		rotate(buildServer(t, &config.Config{ServerPort: "0"}, keys, false, HealthDependencies{}))
		assert.Equal(t, []string{"192.0.2.7", "192.0.2.7"}, keys.keys)
	})

	t.Run("trusted proxy", func(t *testing.T) {
		keys := &keyRecorder{}
		rotate(buildServer(t, &config.Config{ServerPort: "0", TrustProxyHeaders: true}, keys, false, HealthDependencies{}))
		assert.Equal(t, []string{"1.1.1.1", "2.2.2.2"}, keys.keys)
	})
}

func TestServer_WriteGuard(t *testing.T) {
	handler := newTestServer(t, true, true, HealthDependencies{})

	recorder := serve(handler, http.MethodPost, "/entries", `{"text":"x","tags":["y"]}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = serve(handler, http.MethodDelete, "/api/v1/entries/0192d5a4-7c1e-7b3a-9f00-000000000001", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = serve(handler, http.MethodGet, "/entries", "")
	assert.Equal(t, http.StatusOK, recorder.Code, "reads stay public")
}

func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       HealthDependencies
		wantStatus int
		contains   string
	}{
		{"all healthy", HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, `"ready"`},
		{"no cache configured", HealthDependencies{CheckDatabase: healthy}, http.StatusOK, `"ready"`},
		{"database down", HealthDependencies{CheckDatabase: failing}, http.StatusServiceUnavailable, `"degraded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(newTestServer(t, true, false, tt.deps), http.MethodGet, "/ready", "")
			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.contains)
		})
	}
}
