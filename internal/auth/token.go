package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/jobboard/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime when none is configured.
const DefaultTTL = 24 * time.Hour

// Token is a signed bearer token and its validity window.
type Token struct {
	Value     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claims is the verified payload of a token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies HS256 tokens with a process-wide secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a [TokenService]. A nil now uses [time.Now].
func NewTokenService(secret string, ttl time.Duration, now func() time.Time) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: now}
}

// Issue signs a token for subject valid from now until now + ttl.
func (s *TokenService) Issue(subject string) (Token, error) {
	issued := s.now().UTC().Truncate(time.Second)
	expires := issued.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Token{Value: value, IssuedAt: issued, ExpiresAt: expires}, nil
}

// Verify checks the signature and expiry of value and returns its claims.
//
// A token is valid up to and including its expiry instant; after that it fails with [shared.ErrTokenExpired]; a bad signature, a malformed payload, another
// signing algorithm or a missing subject fail with [shared.ErrTokenInvalid].
func (s *TokenService) Verify(value string) (Claims, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(value, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		// jwt rejects now == exp; tokens stay valid through their expiry instant
		jwt.WithLeeway(time.Nanosecond),
		jwt.WithIssuedAt(),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, shared.ErrTokenExpired
	case err != nil:
		return Claims{}, fmt.Errorf("%w: %v", shared.ErrTokenInvalid, err)
	case claims.Subject == "":
		return Claims{}, fmt.Errorf("%w: missing subject", shared.ErrTokenInvalid)
	}

	result := Claims{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result, nil
}
