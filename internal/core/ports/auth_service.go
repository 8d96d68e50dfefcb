package ports

import (
	"context"

	"github.com/sssf/cats-api/internal/core/domain"
)

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A mismatch is not an error.
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs an identity into a bearer token.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

// TokenValidator verifies a bearer token and returns the identity it carries.
// Every failure is reported as domain.ErrInvalidToken.
type TokenValidator interface {
	Validate(raw string) (*domain.Identity, error)
}

// AuthService verifies credentials and issues tokens.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
}

// LoginLimiter counts failed logins per key within a sliding window.
type LoginLimiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
