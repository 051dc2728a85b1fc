package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is substituted when a stored document has no usable title.
const DefaultTitle = "Untitled"

// Movie is the fully-shaped record the API promises. Stored documents may be
// missing any field or hold the wrong type; MovieFromDocument closes that gap,
// so a Movie always has all eight fields with values of the correct type.
type Movie struct {
	ID          uuid.UUID
	Title       string
	Genre       string
	Rating      float64
	Image       string
	Featured    bool
	Description string
	Year        *int // nil when absent or invalid; 0 is not a valid year
	TrailerURL  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MovieFromDocument projects a raw stored document into a Movie, applying
// every defaulting rule unconditionally. This is the single normalization
// point between the loosely-typed store and the API contract.
func MovieFromDocument(id uuid.UUID, doc map[string]any) *Movie {
	return &Movie{
		ID:          id,
		Title:       docString(doc, "title", DefaultTitle),
		Genre:       docString(doc, "genre", ""),
		Rating:      docRating(doc, "rating"),
		Image:       docString(doc, "image", ""),
		Featured:    docBool(doc, "featured"),
		Description: docString(doc, "description", ""),
		Year:        docYear(doc, "year"),
		TrailerURL:  docString(doc, "trailerUrl", ""),
	}
}

// Document renders the movie back into its stored representation.
func (m *Movie) Document() map[string]any {
	doc := map[string]any{
		"title":       m.Title,
		"genre":       m.Genre,
		"rating":      m.Rating,
		"image":       m.Image,
		"featured":    m.Featured,
		"description": m.Description,
		"trailerUrl":  m.TrailerURL,
	}
	if m.Year != nil {
		doc["year"] = *m.Year
	}
	return doc
}

func docString(doc map[string]any, key, fallback string) string {
	if s, ok := doc[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// docRating tolerates missing, non-numeric and negative values.
func docRating(doc map[string]any, key string) float64 {
	f, ok := docNumber(doc[key])
	if !ok || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// docBool treats anything but a literal true as false.
func docBool(doc map[string]any, key string) bool {
	b, ok := doc[key].(bool)
	return ok && b
}

// docYear returns nil for missing, non-numeric or negative values: year 0 is
// not valid but must stay distinguishable from "no value".
func docYear(doc map[string]any, key string) *int {
	f, ok := docNumber(doc[key])
	if !ok || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	y := int(math.Round(f))
	return &y
}

// docNumber accepts the numeric shapes json.Unmarshal can produce.
func docNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
