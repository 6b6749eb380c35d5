// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page/limit query parameters and builds the
// "meta" block of list responses.
package pagination

import (
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a 1-based page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before the page starts.
func (params Params) Offset() int {
	return max(params.Page-1, 0) * params.Limit
}

// Meta describes the returned page within the full result set.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta builds the meta block for a page of total matching rows.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads ?page and ?limit. Missing, malformed or out-of-range
// values fall back to the defaults rather than failing the request.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()
	return Params{
		Page:  intInRange(query.Get("page"), 1, math.MaxInt, DefaultPage),
		Limit: intInRange(query.Get("limit"), 1, MaxLimit, DefaultLimit),
	}
}

func intInRange(raw string, lowest, highest, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < lowest || value > highest {
		return fallback
	}
	return value
}
