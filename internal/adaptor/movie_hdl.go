package adaptor

import (
	"encoding/json"
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// ListMovies handles GET /movies
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListMovies(r.Context(), r.URL.Query())
	if err != nil {
		respondError(w, h.log, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, result)
}

// GetMovie handles GET /movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, movie)
}

// CreateMovie handles POST /movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corpo da requisição inválido.")
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, movie)
}

// UpdateMovie handles PUT /movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corpo da requisição inválido.")
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, movie)
}

// DeleteMovie handles DELETE /movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.DeleteMovie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, result)
}
