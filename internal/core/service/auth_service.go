package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sssf/cats-api/internal/core/domain"
	"github.com/sssf/cats-api/internal/core/ports"
)

// AuthService is the single choke point for login: it verifies credentials
// and, through Login, hands the verified identity to the token issuer.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	log    zerolog.Logger

	// dummyHash is verified against when there is no stored hash, so a
	// rejected login costs one hash comparison whatever the reason.
	dummyHash string
}

const dummyPassword = "cats-api-dummy-password"

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, log zerolog.Logger) *AuthService {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		log.Error().Err(err).Msg("auth: could not prepare dummy hash")
	}
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer, log: log, dummyHash: dummy}
}

// Authenticate returns the identity for a matching email/password pair.
// Unknown email and wrong password both yield domain.ErrInvalidCredentials.
// Only store faults are returned as other errors.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		s.hasher.Verify(password, s.dummyHash)
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(password, cred.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	identity := cred.Identity
	return &identity, nil
}

// Login authenticates and issues a token for the verified identity.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	identity, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.log.Debug().Msg("login rejected")
		}
		return "", nil, err
	}

	token, err := s.issuer.Issue(*identity)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Int64("user_id", identity.ID).Str("role", string(identity.Role)).Msg("login succeeded")
	return token, identity, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
