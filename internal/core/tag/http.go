// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tagbook/internal/platform/constants"
	requestutil "github.com/taibuivan/tagbook/internal/platform/request"
	"github.com/taibuivan/tagbook/internal/platform/respond"
)

type Handler struct {
	service *Service
	guard   func(http.Handler) http.Handler
}

// NewHandler builds the tag handler. guard wraps the mutating routes.
func NewHandler(service *Service, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, guard: guard}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTags)
	router.Get("/{id}", handler.getTag)

	router.Group(func(write chi.Router) {
		write.Use(handler.guard)
		write.Put("/{id}/names/{locale}", handler.setName)
	})

	return router
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.List(request.Context(), Filter{
		Query:  requestutil.Query(request, constants.QueryText),
		Locale: requestutil.ReadLocale(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	tag, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"), requestutil.ReadLocale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
}

type setNameRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) setName(writer http.ResponseWriter, request *http.Request) {
	var body setNameRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.SetName(request.Context(),
		requestutil.ID(request, "id"),
		requestutil.Param(request, "locale"),
		body.Name,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
}
