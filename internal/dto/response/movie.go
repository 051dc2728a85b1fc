package response

import "movie-catalog/internal/data/entity"

// MovieResponse always carries all eight fields with correctly-typed values;
// year serializes as null when the stored document has no usable year.
type MovieResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image"`
	Featured    bool    `json:"featured"`
	Description string  `json:"description"`
	Year        *int    `json:"year"`
	TrailerURL  string  `json:"trailerUrl"`
}

// MovieListResponse is the faceted page envelope for GET /movies.
type MovieListResponse struct {
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
	Items      []MovieResponse `json:"items"`
}

// DeleteResponse confirms a removal.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Genre:       movie.Genre,
		Rating:      movie.Rating,
		Image:       movie.Image,
		Featured:    movie.Featured,
		Description: movie.Description,
		Year:        movie.Year,
		TrailerURL:  movie.TrailerURL,
	}
}
