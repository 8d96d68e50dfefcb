package ports

import (
	"context"

	"github.com/sssf/cats-api/internal/core/domain"
)

// CreateCatInput carries the fields of a new cat. OwnerID zero means the
// acting principal owns it.
type CreateCatInput struct {
	Name      string
	Weight    float64
	OwnerID   int64
	Filename  string
	Birthdate string
	Coords    domain.Point
}

// CatService covers cat use cases.
type CatService interface {
	List(ctx context.Context) ([]domain.Cat, error)
	Get(ctx context.Context, id int64) (*domain.Cat, error)
	Create(ctx context.Context, principal *domain.Identity, in CreateCatInput) (*domain.Cat, error)
	Update(ctx context.Context, principal *domain.Identity, id int64, patch domain.CatPatch) error
	Delete(ctx context.Context, principal *domain.Identity, id int64) error
}
