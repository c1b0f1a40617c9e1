// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/tagbook/internal/core/tag"
	"github.com/taibuivan/tagbook/internal/platform/constants"
	"github.com/taibuivan/tagbook/internal/platform/validate"
	"github.com/taibuivan/tagbook/pkg/locale"
)

type payload struct {
	ID   *string           `json:"id"`
	Text *string           `json:"text"`
	Tags []json.RawMessage `json:"tags"`
}

type refPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Locale string `json:"locale"`
}

// Validate turns a raw entry payload into a [Draft].
//
// Shape errors (not an object, wrong field types, a tag that is neither a
// string nor an object) fail with "bad format"; a blank text with
// "missing text"; an absent or empty tag list with "missing tag". Text and
// tag names come back trimmed and NFC-normalized, and ref locales canonical.
func Validate(raw []byte) (*Draft, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, validate.ErrInvalidJSON
	}

	var body payload
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, validate.ErrInvalidJSON
	}

	refs := make([]tag.Ref, 0, len(body.Tags))
	for i, element := range body.Tags {
		ref, ok := parseRef(element)
		if !ok {
			return nil, validate.FieldError(validate.MsgBadFormat, fmt.Sprintf("tags[%d]", i), "Must be a tag name or a {id, name, locale} object")
		}
		refs = append(refs, ref)
	}

	draft := &Draft{Tags: refs}
	if body.ID != nil {
		draft.ID = strings.TrimSpace(*body.ID)
	}
	if body.Text != nil {
		draft.Text = normalize(*body.Text)
	}

	if draft.Text == "" {
		return nil, validate.FieldError(validate.MsgMissingText, "text", "This field is required")
	}
	if len(refs) == 0 {
		return nil, validate.FieldError(validate.MsgMissingTag, "tags", "At least one tag is required")
	}

	v := &validate.Validator{}
	v.MaxLen("text", draft.Text, constants.MaxEntryTextLength).
		Custom("tags", len(refs) > constants.MaxTagsPerEntry, fmt.Sprintf("Maximum %d tags", constants.MaxTagsPerEntry))

	for i, ref := range refs {
		field := fmt.Sprintf("tags[%d]", i)
		if ref.ByID() {
			continue
		}
		v.Required(field+".name", ref.Name).
			MaxLen(field+".name", ref.Name, constants.MaxTagNameLength).
			Locale(field+".locale", ref.Locale)
	}
	if err := v.ErrAs(validate.MsgBadFormat); err != nil {
		return nil, err
	}

	for i := range draft.Tags {
		if draft.Tags[i].Locale != "" {
			draft.Tags[i].Locale, _ = locale.Parse(draft.Tags[i].Locale)
		}
	}

	return draft, nil
}

// parseRef accepts "name" or {"id"?, "name"?, "locale"?}.
func parseRef(element json.RawMessage) (tag.Ref, bool) {
	element = bytes.TrimSpace(element)
	if len(element) == 0 {
		return tag.Ref{}, false
	}

	switch element[0] {
	case '"':
		var name string
		if err := json.Unmarshal(element, &name); err != nil {
			return tag.Ref{}, false
		}
		return tag.Ref{Name: normalize(name)}, true

	case '{':
		var object refPayload
		if err := json.Unmarshal(element, &object); err != nil {
			return tag.Ref{}, false
		}
		ref := tag.Ref{ID: strings.TrimSpace(object.ID)}
		if ref.ByID() {
			return ref, true
		}
		ref.Name = normalize(object.Name)
		ref.Locale = strings.TrimSpace(object.Locale)
		return ref, true
	}

	return tag.Ref{}, false
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
