package ports

import (
	"context"

	"github.com/sssf/cats-api/internal/core/domain"
)

// UserRepository is the credential store. Lookups return
// domain.ErrUserNotFound when no record matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Create assigns the identity id and returns the stored profile.
	// A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, cred domain.Credential) (*domain.User, error)
	Update(ctx context.Context, id int64, patch domain.CredentialPatch) error
	Delete(ctx context.Context, id int64) error
}
