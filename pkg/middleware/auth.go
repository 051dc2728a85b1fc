package middleware

import (
	"net/http"
	"strings"

	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the Bearer JWT and stores its claims on the request context.
func Auth(tokens utils.TokenService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Token não fornecido.")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Formato de token inválido. Use: Bearer <token>")
				return
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil {
				logger.Warn("Invalid token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Token inválido ou expirado.")
				return
			}

			ctx := utils.SetClaimsContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
