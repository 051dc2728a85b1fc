package adaptor

import (
	"errors"
	"net/http"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth  *AuthHandler
	Movie *MovieHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(service.Auth, log),
		Movie: NewMovieHandler(service.Movie, log),
	}
}

// respondError maps the error taxonomy to HTTP status codes. Anything outside
// the taxonomy is a store failure: logged in full, reported generically.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		log.Warn(operation+" failed - validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error())

	case errors.Is(err, entity.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, entity.ErrAuth):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Erro interno do servidor.")
	}
}
