package usecase

import (
	"context"
	"strings"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
}

type authService struct {
	repo   *repository.Repository
	tokens utils.TokenService
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens utils.TokenService,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, entity.Validation(utils.FormatValidationErrors(errs))
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, err
	}
	if existing != nil {
		return nil, entity.Conflict("E-mail já cadastrado.")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = entity.DefaultRole
	}

	user := &entity.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// The unique index can still fire under concurrent registration
		if err == entity.ErrConflict {
			return nil, entity.Conflict("E-mail já cadastrado.")
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, entity.Validation(utils.FormatValidationErrors(errs))
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", email))
		return nil, err
	}

	// Same response for unknown email and wrong password
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("email", email))
		return nil, entity.Auth("Credenciais inválidas.")
	}

	token, _, err := s.tokens.Sign(user.ID.String(), user.Email, user.Name, user.Role)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.LoginResponse{
		Token: token,
		User:  response.UserToResponse(user),
	}, nil
}
