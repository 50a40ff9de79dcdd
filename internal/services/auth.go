package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jobboard/internal/auth"
	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/shared"
)

// LoginResult is returned from a successful login.
type LoginResult struct {
	Token auth.Token
	Admin *models.Admin
}

// AuthService authenticates the admin account.
type AuthService struct {
	admins AdminStore
	hasher *auth.Hasher
	tokens *auth.TokenService
	guard  *auth.Guard
	logger *log.Logger
	// decoy is compared against when the email is unknown so both failure paths cost a bcrypt check
	decoy string
}

// NewAuthService creates an [AuthService].
func NewAuthService(admins AdminStore, hasher *auth.Hasher, tokens *auth.TokenService, logger *log.Logger) (*AuthService, error) {
	decoy, err := hasher.Hash(shared.GenerateID())
	if err != nil {
		return nil, err
	}
	return &AuthService{
		admins: admins,
		hasher: hasher,
		tokens: tokens,
		guard:  auth.NewGuard(tokens),
		logger: shared.WithLogger(logger, "service", "auth"),
		decoy:  decoy,
	}, nil
}

// Login exchanges credentials for a token. Unknown emails and wrong passwords both fail with
// [shared.ErrInvalidCredentials].
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (*LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	admin, err := s.admins.GetByEmail(ctx, creds.Email)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		s.hasher.Verify(creds.Password, s.decoy)
		s.logger.Warn("login failed", "email", creds.Email)
		return nil, shared.ErrInvalidCredentials
	case err != nil:
		return nil, err
	}

	if !s.hasher.Verify(creds.Password, admin.Password) {
		s.logger.Warn("login failed", "email", creds.Email)
		return nil, shared.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in", "email", admin.Email)
	return &LoginResult{Token: token, Admin: admin}, nil
}

// Authenticate verifies the Authorization header and resolves its subject to an existing admin.
func (s *AuthService) Authenticate(ctx context.Context, header string) (*models.Admin, error) {
	claims, err := s.guard.Check(header)
	if err != nil {
		return nil, err
	}

	admin, err := s.admins.GetByEmail(ctx, claims.Subject)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("%w: admin %s no longer exists", shared.ErrUnauthorized, claims.Subject)
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}
