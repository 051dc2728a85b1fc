package request

// MovieRequest carries a movie creation payload. Fields are pointers so a
// wrong-typed value fails JSON decoding and a missing one fails validation;
// title's requiredness depends on the configured strictness policy, so it is
// checked in the service instead of by tag.
type MovieRequest struct {
	Title       *string  `json:"title"`
	Genre       *string  `json:"genre" validate:"required"`
	Rating      *float64 `json:"rating" validate:"required"`
	Image       *string  `json:"image" validate:"required"`
	Featured    *bool    `json:"featured"`
	Description *string  `json:"description" validate:"required"`
	Year        *float64 `json:"year" validate:"required"`
	TrailerURL  *string  `json:"trailerUrl" validate:"required"`
}

// MovieUpdateRequest carries a partial update: only supplied fields change.
type MovieUpdateRequest struct {
	Title       *string  `json:"title,omitempty"`
	Genre       *string  `json:"genre,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	Description *string  `json:"description,omitempty"`
	Year        *float64 `json:"year,omitempty"`
	TrailerURL  *string  `json:"trailerUrl,omitempty"`
}

// IsEmpty reports whether the update supplies no fields at all.
func (r MovieUpdateRequest) IsEmpty() bool {
	return r.Title == nil && r.Genre == nil && r.Rating == nil &&
		r.Image == nil && r.Featured == nil && r.Description == nil &&
		r.Year == nil && r.TrailerURL == nil
}
