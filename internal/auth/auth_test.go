package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/jobboard/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func TestHasher(t *testing.T) {
	h := NewHasher(bcryptTestCost)

	hash, err := h.Hash("ChangeMe123!")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		if !h.Verify("ChangeMe123!", hash) {
			t.Error("expected password to verify against its hash")
		}
	})

	t.Run("other plaintext", func(t *testing.T) {
		if h.Verify("changeme123!", hash) {
			t.Error("expected different password to fail")
		}
	})

	t.Run("malformed hash", func(t *testing.T) {
		if h.Verify("ChangeMe123!", "not-a-bcrypt-hash") {
			t.Error("expected malformed hash to fail")
		}
	})

	t.Run("salted", func(t *testing.T) {
		again, err := h.Hash("ChangeMe123!")
		if err != nil {
			t.Fatalf("failed to hash: %v", err)
		}
		if again == hash {
			t.Error("expected two hashes of the same password to differ")
		}
	})

	t.Run("out of range cost falls back", func(t *testing.T) {
		if NewHasher(99).cost != DefaultCost {
			t.Errorf("expected cost %d", DefaultCost)
		}
	})
}

// bcryptTestCost keeps the hasher tests fast.
const bcryptTestCost = 4

func TestTokenService(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("verifies to subject until expiry", func(t *testing.T) {
		c := &clock{t: start}
		svc := NewTokenService("secret", 24*time.Hour, c.Now)

		token, err := svc.Issue("admin@example.com")
		if err != nil {
			t.Fatalf("failed to issue: %v", err)
		}
		if !token.ExpiresAt.Equal(start.Add(24 * time.Hour)) {
			t.Errorf("expected expiry %v, got %v", start.Add(24*time.Hour), token.ExpiresAt)
		}

		c.t = start.Add(24*time.Hour - time.Second)
		claims, err := svc.Verify(token.Value)
		if err != nil {
			t.Fatalf("expected token to verify before expiry, got %v", err)
		}
		if claims.Subject != "admin@example.com" {
			t.Errorf("expected subject admin@example.com, got %s", claims.Subject)
		}

		c.t = start.Add(24 * time.Hour)
		if _, err := svc.Verify(token.Value); err != nil {
			t.Fatalf("expected token to verify at its expiry instant, got %v", err)
		}

		c.t = start.Add(24*time.Hour + time.Nanosecond)
		if _, err := svc.Verify(token.Value); !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired just after expiry, got %v", err)
		}

		c.t = start.Add(24*time.Hour + time.Second)
		if _, err := svc.Verify(token.Value); !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("different secret", func(t *testing.T) {
		c := &clock{t: start}
		token, err := NewTokenService("secret-a", time.Hour, c.Now).Issue("admin@example.com")
		if err != nil {
			t.Fatalf("failed to issue: %v", err)
		}

		_, err = NewTokenService("secret-b", time.Hour, c.Now).Verify(token.Value)
		if !errors.Is(err, shared.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected token errors to match ErrUnauthorized, got %v", err)
		}
	})

	t.Run("tampered signature", func(t *testing.T) {
		c := &clock{t: start}
		svc := NewTokenService("secret", time.Hour, c.Now)
		token, err := svc.Issue("admin@example.com")
		if err != nil {
			t.Fatalf("failed to issue: %v", err)
		}

		sig := token.Value[strings.LastIndex(token.Value, ".")+1:]
		flipped := "A"
		if sig[0] == 'A' {
			flipped = "B"
		}
		tampered := token.Value[:strings.LastIndex(token.Value, ".")+1] + flipped + sig[1:]

		if _, err := svc.Verify(tampered); !errors.Is(err, shared.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		svc := NewTokenService("secret", time.Hour, nil)
		for _, value := range []string{"", "abc", "a.b.c"} {
			if _, err := svc.Verify(value); !errors.Is(err, shared.ErrTokenInvalid) {
				t.Errorf("expected ErrTokenInvalid for %q, got %v", value, err)
			}
		}
	})

	t.Run("unsigned algorithm rejected", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   "admin@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		value, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("failed to build token: %v", err)
		}

		if _, err := NewTokenService("secret", time.Hour, nil).Verify(value); !errors.Is(err, shared.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		svc := NewTokenService("secret", time.Hour, nil)
		token, err := svc.Issue("")
		if err != nil {
			t.Fatalf("failed to issue: %v", err)
		}
		if _, err := svc.Verify(token.Value); !errors.Is(err, shared.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})
}

func TestGuard(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, nil)
	guard := NewGuard(svc)
	token, err := svc.Issue("admin@example.com")
	if err != nil {
		t.Fatalf("failed to issue: %v", err)
	}

	tc := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "valid", header: "Bearer " + token.Value},
		{name: "lower case scheme", header: "bearer " + token.Value},
		{name: "missing", header: "", wantErr: shared.ErrUnauthorized},
		{name: "wrong scheme", header: "Basic " + token.Value, wantErr: shared.ErrUnauthorized},
		{name: "no token", header: "Bearer", wantErr: shared.ErrUnauthorized},
		{name: "extra parts", header: "Bearer a b", wantErr: shared.ErrUnauthorized},
		{name: "garbage token", header: "Bearer garbage", wantErr: shared.ErrTokenInvalid},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := guard.Check(tt.header)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if claims.Subject != "admin@example.com" {
					t.Errorf("expected subject admin@example.com, got %s", claims.Subject)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
