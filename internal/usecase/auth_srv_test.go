package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockUserRepo struct {
	byEmail     *entity.User
	findErr     error
	createErr   error
	createdUser *entity.User
}

func (m *mockUserRepo) Create(_ context.Context, user *entity.User) error {
	m.createdUser = user
	return m.createErr
}

func (m *mockUserRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	return m.byEmail, m.findErr
}

func newAuthService(repo *mockUserRepo) AuthService {
	tokens := utils.TokenService{Secret: []byte("test-secret"), Duration: time.Hour}
	return NewAuthService(&repository.Repository{User: repo}, tokens, zap.NewNop())
}

func TestRegister_Success(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newAuthService(repo)

	got, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Maria Silva",
		Email:    "Maria@Example.COM",
		Password: "segredo123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Email != "maria@example.com" {
		t.Errorf("email = %q, want lowercase", got.Email)
	}
	if got.Role != entity.DefaultRole {
		t.Errorf("role = %q, want %q", got.Role, entity.DefaultRole)
	}
	if repo.createdUser == nil {
		t.Fatal("user not persisted")
	}
	if repo.createdUser.PasswordHash == "segredo123" {
		t.Error("password stored in clear")
	}
	if !utils.CheckPasswordHash("segredo123", repo.createdUser.PasswordHash) {
		t.Error("stored hash does not verify")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	existing := &entity.User{ID: uuid.New(), Email: "maria@example.com"}
	svc := newAuthService(&mockUserRepo{byEmail: existing})

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Maria Silva",
		Email:    "maria@example.com",
		Password: "segredo123",
	})
	if !errors.Is(err, entity.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err.Error() != "E-mail já cadastrado." {
		t.Errorf("message = %q", err.Error())
	}
}

func TestRegister_ConcurrentDuplicate(t *testing.T) {
	// Pre-check misses but the unique index fires on insert
	svc := newAuthService(&mockUserRepo{createErr: entity.ErrConflict})

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Maria Silva",
		Email:    "maria@example.com",
		Password: "segredo123",
	})
	if !errors.Is(err, entity.ErrConflict) {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestRegister_InvalidPayload(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	tests := []struct {
		name string
		req  *request.RegisterRequest
	}{
		{"missing name", &request.RegisterRequest{Email: "a@b.com", Password: "segredo123"}},
		{"bad email", &request.RegisterRequest{Name: "Maria", Email: "not-an-email", Password: "segredo123"}},
		{"short password", &request.RegisterRequest{Name: "Maria", Email: "a@b.com", Password: "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			if !errors.Is(err, entity.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := utils.HashPassword("segredo123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &entity.User{
		ID:           uuid.New(),
		Name:         "Maria Silva",
		Email:        "maria@example.com",
		PasswordHash: hash,
		Role:         "admin",
	}
	svc := newAuthService(&mockUserRepo{byEmail: user})

	got, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "maria@example.com",
		Password: "segredo123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.User.Email != user.Email || got.User.Role != "admin" {
		t.Errorf("user payload = %+v", got.User)
	}

	tokens := utils.TokenService{Secret: []byte("test-secret"), Duration: time.Hour}
	claims, err := tokens.Parse(got.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID.String() || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("segredo123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &entity.User{ID: uuid.New(), Email: "maria@example.com", PasswordHash: hash}
	svc := newAuthService(&mockUserRepo{byEmail: user})

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email:    "maria@example.com",
		Password: "errada",
	})
	if !errors.Is(err, entity.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if err.Error() != "Credenciais inválidas." {
		t.Errorf("message = %q", err.Error())
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "ninguem@example.com",
		Password: "segredo123",
	})
	if !errors.Is(err, entity.ErrAuth) {
		t.Errorf("expected auth error, got %v", err)
	}
}
