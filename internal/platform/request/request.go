// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tagbook/internal/platform/apperr"
	"github.com/taibuivan/tagbook/internal/platform/constants"
	"github.com/taibuivan/tagbook/internal/platform/ctxutil"
	"github.com/taibuivan/tagbook/internal/platform/sec"
	"github.com/taibuivan/tagbook/internal/platform/validate"
	"github.com/taibuivan/tagbook/pkg/locale"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body, err := Body(writer, request)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Body reads the whole request body, capped at [constants.MaxBodyBytes].

Returns:
  - error: a VALIDATION_ERROR when the body is too large or unreadable
*/
func Body(writer http.ResponseWriter, request *http.Request) ([]byte, error) {
	reader := http.MaxBytesReader(writer, request.Body, constants.MaxBodyBytes)
	body, err := io.ReadAll(reader)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, validate.FieldError(validate.MsgBadFormat, "body", "Request body too large")
		}
		return nil, validate.ErrInvalidJSON
	}
	return body, nil
}

/*
ID retrieves a named URL parameter (UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Query returns a query-string value, or "" when absent.
*/
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}

/*
ReadLocale returns the canonical ?lang= value for read paths.

A missing or malformed value yields "", which selects default-locale names.
*/
func ReadLocale(request *http.Request) string {
	return locale.Lenient(Query(request, constants.QueryLocale))
}

/*
WriteLocale returns the canonical ?lang= value for write paths.

Returns:
  - string: canonical locale, or "" when the parameter is absent
  - error: VALIDATION_ERROR ("bad format") when the parameter is malformed
*/
func WriteLocale(request *http.Request) (string, error) {
	raw := Query(request, constants.QueryLocale)
	if raw == "" {
		return "", nil
	}

	canonical, err := locale.Parse(raw)
	if err != nil {
		return "", validate.FieldError(validate.MsgBadFormat, constants.QueryLocale, "Must be a valid locale (BCP 47)")
	}
	return canonical, nil
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
