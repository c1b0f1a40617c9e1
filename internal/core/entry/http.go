// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tagbook/internal/core/tag"
	"github.com/taibuivan/tagbook/internal/platform/constants"
	requestutil "github.com/taibuivan/tagbook/internal/platform/request"
	"github.com/taibuivan/tagbook/internal/platform/respond"
)

// TagLister supplies the full tag list returned alongside a written entry.
type TagLister interface {
	List(ctx context.Context, filter tag.Filter) ([]*tag.Tag, error)
}

type Handler struct {
	service *Service
	tags    TagLister
	guard   func(http.Handler) http.Handler
}

// NewHandler builds the entry handler. guard wraps the mutating routes.
func NewHandler(service *Service, tags TagLister, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, tags: tags, guard: guard}
}

// Routes returns a [chi.Router] configured with the entry endpoints.
//
//   - Reads are public.
//   - Writes go through the guard.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listEntries)
	router.Get("/{id}", handler.getEntry)

	router.Group(func(write chi.Router) {
		write.Use(handler.guard)

		write.Post("/", handler.createEntry)
		write.Put("/{id}", handler.updateEntry)
		write.Delete("/{id}", handler.deleteEntry)
	})

	return router
}

// mutationResponse is the body of a successful create or update: the written
// entry plus every known tag, so clients can refresh their tag pickers.
type mutationResponse struct {
	Entry *Entry     `json:"entry"`
	Tags  []*tag.Tag `json:"tags"`
}

type deleteResponse struct {
	ID string `json:"id"`
}

func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.List(request.Context(), Filter{
		Query:  requestutil.Query(request, constants.QueryText),
		TagID:  requestutil.Query(request, constants.QueryTag),
		Locale: requestutil.ReadLocale(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

func (handler *Handler) getEntry(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"), requestutil.ReadLocale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

func (handler *Handler) createEntry(writer http.ResponseWriter, request *http.Request) {
	draft, locale, err := handler.readDraft(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Create(request.Context(), draft, locale)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body, err := handler.compose(request.Context(), result, locale)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, body)
}

func (handler *Handler) updateEntry(writer http.ResponseWriter, request *http.Request) {
	draft, locale, err := handler.readDraft(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), draft, locale)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body, err := handler.compose(request.Context(), result, locale)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, body)
}

func (handler *Handler) deleteEntry(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, deleteResponse{ID: id})
}

func (handler *Handler) readDraft(writer http.ResponseWriter, request *http.Request) (*Draft, string, error) {
	locale, err := requestutil.WriteLocale(request)
	if err != nil {
		return nil, "", err
	}

	raw, err := requestutil.Body(writer, request)
	if err != nil {
		return nil, "", err
	}

	draft, err := Validate(raw)
	if err != nil {
		return nil, "", err
	}
	return draft, locale, nil
}

// compose re-reads the whole tag list after the write has committed.
func (handler *Handler) compose(ctx context.Context, result *Result, locale string) (*mutationResponse, error) {
	tags, err := handler.tags.List(ctx, tag.Filter{Locale: locale})
	if err != nil {
		return nil, err
	}
	return &mutationResponse{Entry: result.Entry, Tags: tags}, nil
}
