// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package info serves catalog metadata for GET /info.
package info

// Info describes the running service and the size of the catalog.
type Info struct {
	Name          string   `json:"name"`
	Version       string   `json:"version"`
	DefaultLocale string   `json:"defaultLocale"`
	Entries       int64    `json:"entries"`
	Tags          int64    `json:"tags"`
	Locales       []string `json:"locales"`
}

// Stats is the part of [Info] read from storage.
type Stats struct {
	Entries int64
	Tags    int64
	Locales []string
}
