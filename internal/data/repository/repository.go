package repository

import (
	"movie-catalog/pkg/database"

	"go.uber.org/zap"
)

// Repository groups all repositories
type Repository struct {
	Movie MovieRepository
	User  UserRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie: NewMovieRepository(db, log),
		User:  NewUserRepository(db, log),
	}
}
