package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/shared"
)

func newAuthService(t *testing.T, f *fixture) *AuthService {
	t.Helper()
	seeder := NewSeeder(f.jobRepo, f.adminRepo, f.hasher, nil, f.clock.Now)
	if _, err := seeder.SeedAdmin(context.Background(), "admin@example.com", "ChangeMe123!"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	svc, err := NewAuthService(f.adminRepo, f.hasher, f.tokens, shared.NewLogger(io.Discard))
	if err != nil {
		t.Fatalf("failed to create auth service: %v", err)
	}
	return svc
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()

	t.Run("Login", func(t *testing.T) {
		f := newFixture(t)
		svc := newAuthService(t, f)

		result, err := svc.Login(ctx, models.Credentials{Email: "admin@example.com", Password: "ChangeMe123!"})
		if err != nil {
			t.Fatalf("expected login to succeed, got %v", err)
		}
		if result.Token.Value == "" || result.Admin.Email != "admin@example.com" {
			t.Errorf("unexpected login result %+v", result)
		}
		if !result.Token.ExpiresAt.Equal(f.clock.Now().Add(24 * time.Hour)) {
			t.Errorf("expected token to expire in 24h, got %v", result.Token.ExpiresAt)
		}
	})

	t.Run("identical failures", func(t *testing.T) {
		f := newFixture(t)
		svc := newAuthService(t, f)

		_, wrongPassword := svc.Login(ctx, models.Credentials{Email: "admin@example.com", Password: "nope"})
		_, unknownEmail := svc.Login(ctx, models.Credentials{Email: "ghost@example.com", Password: "nope"})

		if !errors.Is(wrongPassword, shared.ErrInvalidCredentials) || !errors.Is(unknownEmail, shared.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v and %v", wrongPassword, unknownEmail)
		}
		if wrongPassword.Error() != unknownEmail.Error() {
			t.Errorf("expected identical messages, got %q and %q", wrongPassword, unknownEmail)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newFixture(t)
		svc := newAuthService(t, f)

		if _, err := svc.Login(ctx, models.Credentials{Email: "admin@example.com"}); !errors.Is(err, shared.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		f := newFixture(t)
		svc := newAuthService(t, f)

		result, err := svc.Login(ctx, models.Credentials{Email: "admin@example.com", Password: "ChangeMe123!"})
		if err != nil {
			t.Fatalf("failed to login: %v", err)
		}

		admin, err := svc.Authenticate(ctx, "Bearer "+result.Token.Value)
		if err != nil {
			t.Fatalf("expected token to authenticate, got %v", err)
		}
		if admin.Email != "admin@example.com" {
			t.Errorf("expected admin@example.com, got %s", admin.Email)
		}

		if _, err := svc.Authenticate(ctx, ""); !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized for missing header, got %v", err)
		}

		f.clock.Advance(25 * time.Hour)
		if _, err := svc.Authenticate(ctx, "Bearer "+result.Token.Value); !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("deleted admin", func(t *testing.T) {
		f := newFixture(t)
		svc := newAuthService(t, f)

		result, err := svc.Login(ctx, models.Credentials{Email: "admin@example.com", Password: "ChangeMe123!"})
		if err != nil {
			t.Fatalf("failed to login: %v", err)
		}
		if _, err := f.db.Exec("DELETE FROM admins"); err != nil {
			t.Fatalf("failed to delete admin: %v", err)
		}

		if _, err := svc.Authenticate(ctx, "Bearer "+result.Token.Value); !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})
}
