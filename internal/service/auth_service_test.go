package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/repository"
)

type fakeBlacklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: make(map[string]bool)}
}

func (b *fakeBlacklist) Revoke(_ context.Context, token string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[token] = true
	return nil
}

func (b *fakeBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revoked[token], nil
}

func newAuthService(expiry time.Duration) (AuthService, *repository.MemoryUserRepository, *fakeBlacklist) {
	userRepo := repository.NewMemoryUserRepository()
	blacklist := newFakeBlacklist()
	svc := NewAuthService(userRepo, blacklist, &AuthServiceConfig{
		JWTSecret:         "test-secret",
		AccessTokenExpiry: expiry,
		BcryptCost:        bcrypt.MinCost,
	})
	return svc, userRepo, blacklist
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthService(time.Hour)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if registered.AccessToken == "" {
		t.Error("expected an access token")
	}
	if registered.User.Role != string(domain.RoleUser) {
		t.Errorf("expected USER role, got %s", registered.User.Role)
	}

	loggedIn, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := svc.ValidateToken(ctx, loggedIn.AccessToken)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != registered.User.ID {
		t.Errorf("claims user mismatch: %s vs %s", claims.UserID, registered.User.ID)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("unexpected email in claims: %s", claims.Email)
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(time.Hour)
	ctx := context.Background()

	req := &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "s3cret"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(ctx, req); err != domain.ErrUserAlreadyExists {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "s3cret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong"}); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "s3cret"}); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _ := newAuthService(time.Hour)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.ValidateToken(ctx, resp.AccessToken); err != nil {
		t.Fatalf("token should validate before logout: %v", err)
	}

	if err := svc.Logout(ctx, resp.AccessToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := svc.ValidateToken(ctx, resp.AccessToken); err != ErrTokenRevoked {
		t.Errorf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestAuthService_ValidateGarbageToken(t *testing.T) {
	svc, _, _ := newAuthService(time.Hour)

	if _, err := svc.ValidateToken(context.Background(), "not-a-jwt"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_ValidateExpiredToken(t *testing.T) {
	svc, _, _ := newAuthService(-time.Minute)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.ValidateToken(ctx, resp.AccessToken); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_WrongSigningKey(t *testing.T) {
	issuer, _, _ := newAuthService(time.Hour)
	ctx := context.Background()

	resp, err := issuer.Register(ctx, &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	other := NewAuthService(repository.NewMemoryUserRepository(), newFakeBlacklist(), &AuthServiceConfig{
		JWTSecret:         "different-secret",
		AccessTokenExpiry: time.Hour,
		BcryptCost:        4,
	})
	if _, err := other.ValidateToken(ctx, resp.AccessToken); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
