package wire

import (
	"movie-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", movieHandler.ListMovies)
		r.Post("/", movieHandler.CreateMovie)
		r.Get("/{id}", movieHandler.GetMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})
}
