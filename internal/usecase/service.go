package usecase

import (
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Service groups all services
type Service struct {
	Auth  AuthService
	Movie MovieService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	tokens := utils.NewTokenService(config.JWT)

	return &Service{
		Auth:  NewAuthService(repo, tokens, log),
		Movie: NewMovieService(repo, config, log),
	}
}
