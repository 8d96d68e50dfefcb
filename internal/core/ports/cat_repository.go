package ports

import (
	"context"

	"github.com/sssf/cats-api/internal/core/domain"
)

// CatRepository defines persistence operations for cats. Lookups return
// domain.ErrCatNotFound when no record matches.
type CatRepository interface {
	List(ctx context.Context) ([]domain.Cat, error)
	FindByID(ctx context.Context, id int64) (*domain.Cat, error)
	// Create assigns the cat id. Only Owner.ID of the input is persisted.
	Create(ctx context.Context, cat domain.Cat) (*domain.Cat, error)
	Update(ctx context.Context, id int64, patch domain.CatPatch) error
	Delete(ctx context.Context, id int64) error
}
