package adaptor

import (
	"encoding/json"
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corpo da requisição inválido.")
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, user)
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corpo da requisição inválido.")
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, result)
}

// Me handles GET /me - returns the principal carried by the verified token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Autenticação necessária.")
		return
	}

	utils.ResponseSuccess(w, response.UserResponse{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	})
}
