package ports

import (
	"context"

	"github.com/sssf/cats-api/internal/core/domain"
)

// RegisterInput carries the fields of a new account. The role is always
// domain.RoleUser.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserService covers user record use cases. Mutating methods take the
// principal derived from the validated token, never from the request body.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	UpdateCurrent(ctx context.Context, principal *domain.Identity, patch domain.UserPatch) error
	DeleteCurrent(ctx context.Context, principal *domain.Identity) error
	Update(ctx context.Context, principal *domain.Identity, id int64, patch domain.UserPatch) error
	Delete(ctx context.Context, principal *domain.Identity, id int64) error
}
