package auth

import (
	"fmt"
	"strings"

	"github.com/desertthunder/jobboard/internal/shared"
)

// Guard resolves the Authorization header of an admin request into verified claims.
type Guard struct {
	tokens *TokenService
}

// NewGuard creates a [Guard] backed by tokens.
func NewGuard(tokens *TokenService) *Guard {
	return &Guard{tokens: tokens}
}

// Check requires the "Bearer <token>" form and verifies the token.
//
// A missing or malformed header fails with [shared.ErrUnauthorized]. Verification failures keep their
// [shared.ErrTokenExpired] or [shared.ErrTokenInvalid] kind.
func (g *Guard) Check(header string) (Claims, error) {
	token, err := BearerToken(header)
	if err != nil {
		return Claims{}, err
	}
	return g.tokens.Verify(token)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", shared.ErrUnauthorized)
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", fmt.Errorf("%w: authorization header must use the Bearer scheme", shared.ErrUnauthorized)
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", fmt.Errorf("%w: malformed bearer token", shared.ErrUnauthorized)
	}
	return token, nil
}
