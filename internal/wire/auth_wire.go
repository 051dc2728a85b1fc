package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// Token-protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(utils.NewTokenService(config.JWT), log))
		r.Get("/me", authHandler.Me)
	})
}
