package usecase

import (
	"context"
	"math"
	"net/url"
	"strings"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/filter"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	ListMovies(ctx context.Context, params url.Values) (*response.MovieListResponse, error)
	GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) (*response.DeleteResponse, error)
}

type movieService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "movie")),
	}
}

// ListMovies runs the full pipeline: raw query parameters through the filter
// builder, the predicate through the store, and every returned record through
// normalization.
func (s *movieService) ListMovies(ctx context.Context, params url.Values) (*response.MovieListResponse, error) {
	pred, page := filter.Build(params)

	movies, total, err := s.repo.Movie.FindAll(ctx, pred, page)
	if err != nil {
		s.log.Error("Failed to list movies",
			zap.Error(err),
			zap.Int("page", page.Number),
			zap.Int("page_size", page.Size),
		)
		return nil, err
	}

	items := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		items[i] = response.MovieToResponse(movie)
	}

	s.log.Info("Movies listed",
		zap.Int("count", len(items)),
		zap.Int64("total", total),
		zap.Int("page", page.Number),
	)

	return &response.MovieListResponse{
		Page:       page.Number,
		PageSize:   page.Size,
		Total:      total,
		TotalPages: utils.CalculateTotalPages(total, page.Size),
		Items:      items,
	}, nil
}

func (s *movieService) GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		s.log.Warn("Invalid movie ID format", zap.String("movie_id", movieID))
		return nil, entity.Validation("ID de filme inválido.")
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}
	if movie == nil {
		return nil, entity.NotFound("Filme não encontrado.")
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, entity.Validation(utils.FormatValidationErrors(errs))
	}

	if s.config.Movie.RequireTitle {
		if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
			return nil, entity.Validation("title é obrigatório")
		}
	}

	year := int(math.Round(*req.Year))
	movie := &entity.Movie{
		ID:          uuid.New(),
		Genre:       *req.Genre,
		Rating:      *req.Rating,
		Image:       *req.Image,
		Description: *req.Description,
		Year:        &year,
		TrailerURL:  *req.TrailerURL,
	}
	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Featured != nil {
		movie.Featured = *req.Featured
	}

	if err := s.repo.Movie.Insert(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err))
		return nil, err
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	// Return the normalized shape, not the raw submission
	resp := response.MovieToResponse(entity.MovieFromDocument(movie.ID, movie.Document()))
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		s.log.Warn("Invalid movie ID format", zap.String("movie_id", movieID))
		return nil, entity.Validation("ID de filme inválido.")
	}

	if req.IsEmpty() {
		return nil, entity.Validation("Nenhum campo para atualizar.")
	}

	movie, err := s.repo.Movie.ApplyPatch(ctx, id, buildPatch(req))
	if err != nil {
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}
	if movie == nil {
		return nil, entity.NotFound("Filme não encontrado.")
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) (*response.DeleteResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		s.log.Warn("Invalid movie ID format", zap.String("movie_id", movieID))
		return nil, entity.Validation("ID de filme inválido.")
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		if err == entity.ErrNotFound {
			return nil, entity.NotFound("Filme não encontrado.")
		}
		s.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID))

	return &response.DeleteResponse{
		Message: "Filme removido com sucesso.",
		ID:      movieID,
	}, nil
}

// buildPatch turns the supplied subset of fields into a document patch.
// Year is rounded the same way the create path rounds it.
func buildPatch(req *request.MovieUpdateRequest) map[string]any {
	patch := make(map[string]any)

	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Genre != nil {
		patch["genre"] = *req.Genre
	}
	if req.Rating != nil {
		patch["rating"] = *req.Rating
	}
	if req.Image != nil {
		patch["image"] = *req.Image
	}
	if req.Featured != nil {
		patch["featured"] = *req.Featured
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Year != nil {
		patch["year"] = int(math.Round(*req.Year))
	}
	if req.TrailerURL != nil {
		patch["trailerUrl"] = *req.TrailerURL
	}

	return patch
}
