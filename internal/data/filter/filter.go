// Package filter turns untyped list-endpoint query parameters into a typed
// predicate and pagination window. It never rejects input: every malformed
// filter value degrades to "filter not specified".
package filter

import (
	"net/url"
	"strconv"
	"strings"

	"movie-catalog/pkg/utils"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Predicate is an AND of independent, optional conditions. A zero Predicate
// matches every record.
type Predicate struct {
	// Search is a case-insensitive substring, matched against title, genre
	// and description (OR across the three fields).
	Search *string
	// Featured is an exact boolean match. Absent means "no filter".
	Featured *bool
	// MinRating and MaxRating are inclusive bounds.
	MinRating *float64
	MaxRating *float64
	// Year is an exact match.
	Year *int
}

// IsEmpty reports whether the predicate has no conditions, so the store
// layer can skip emitting an empty conjunction.
func (p Predicate) IsEmpty() bool {
	return p.Search == nil && p.Featured == nil &&
		p.MinRating == nil && p.MaxRating == nil && p.Year == nil
}

// Page is a validated pagination window.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return utils.CalculateOffset(p.Number, p.Size)
}

// Build parses raw query parameters into a predicate and pagination window.
func Build(params url.Values) (Predicate, Page) {
	// Unparsable pageSize falls back to the default; out-of-range values clamp.
	size := DefaultPageSize
	if n, err := strconv.Atoi(params.Get("pageSize")); err == nil {
		size = n
	}

	page := Page{
		Number: parsePositiveInt(params.Get("page"), 1),
		Size:   clamp(size, 1, MaxPageSize),
	}

	var pred Predicate

	if search := strings.TrimSpace(params.Get("search")); search != "" {
		pred.Search = &search
	}

	if raw, ok := lookup(params, "featured"); ok {
		featured := strings.EqualFold(strings.TrimSpace(raw), "true")
		pred.Featured = &featured
	}

	if f, err := strconv.ParseFloat(params.Get("minRating"), 64); err == nil {
		pred.MinRating = &f
	}
	if f, err := strconv.ParseFloat(params.Get("maxRating"), 64); err == nil {
		pred.MaxRating = &f
	}

	if y, err := strconv.Atoi(params.Get("year")); err == nil {
		pred.Year = &y
	}

	return pred, page
}

// lookup distinguishes "parameter absent" from "parameter present but empty":
// a present featured flag always filters, an absent one never does.
func lookup(params url.Values, key string) (string, bool) {
	vs, ok := params[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func parsePositiveInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
