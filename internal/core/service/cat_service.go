package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sssf/cats-api/internal/core/domain"
	"github.com/sssf/cats-api/internal/core/ports"
)

type CatService struct {
	repo   ports.CatRepository
	users  ports.UserRepository
	guard  guard
	logger zerolog.Logger
}

func NewCatService(repo ports.CatRepository, users ports.UserRepository, audit ports.AuditRecorder, logger zerolog.Logger) *CatService {
	return &CatService{repo: repo, users: users, guard: newGuard(audit), logger: logger}
}

func (s *CatService) List(ctx context.Context) ([]domain.Cat, error) {
	return s.repo.List(ctx)
}

func (s *CatService) Get(ctx context.Context, id int64) (*domain.Cat, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new cat. The owner defaults to the principal; naming
// another owner is subject to the same ownership rule as any mutation.
func (s *CatService) Create(ctx context.Context, principal *domain.Identity, in ports.CreateCatInput) (*domain.Cat, error) {
	ownerID := in.OwnerID
	if ownerID == 0 && principal != nil {
		ownerID = principal.ID
	}
	if err := s.guard.authorize(principal, domain.ActionCreateCat, &domain.Target{OwnerID: ownerID}); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || in.Weight <= 0 {
		return nil, domain.ErrInvalidInput
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, domain.Cat{
		Name:      name,
		Weight:    in.Weight,
		Owner:     domain.Owner{ID: owner.ID, Name: owner.Name},
		Filename:  in.Filename,
		Birthdate: in.Birthdate,
		Coords:    in.Coords,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create cat")
		return nil, err
	}
	created.Owner = domain.Owner{ID: owner.ID, Name: owner.Name}

	s.logger.Info().Int64("cat_id", created.ID).Int64("owner_id", owner.ID).Msg("cat created")
	return created, nil
}

// Update applies patch to a cat. Handing the cat to a different owner is
// authorized against the new owner as well as the current one.
func (s *CatService) Update(ctx context.Context, principal *domain.Identity, id int64, patch domain.CatPatch) error {
	cat, err := s.authorizedCat(ctx, principal, domain.ActionUpdateCat, id)
	if err != nil {
		return err
	}
	if patch.Empty() {
		return domain.ErrNoChanges
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.ErrInvalidInput
	}
	if patch.Weight != nil && *patch.Weight <= 0 {
		return domain.ErrInvalidInput
	}

	if patch.OwnerID != nil && *patch.OwnerID != cat.Owner.ID {
		if err := s.guard.authorize(principal, domain.ActionUpdateCat, &domain.Target{ID: id, OwnerID: *patch.OwnerID}); err != nil {
			return err
		}
		if _, err := s.users.FindByID(ctx, *patch.OwnerID); err != nil {
			return err
		}
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return err
	}
	s.logger.Info().Int64("cat_id", id).Int64("by", principal.ID).Msg("cat updated")
	return nil
}

func (s *CatService) Delete(ctx context.Context, principal *domain.Identity, id int64) error {
	if _, err := s.authorizedCat(ctx, principal, domain.ActionDeleteCat, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("cat_id", id).Int64("by", principal.ID).Msg("cat deleted")
	return nil
}

// authorizedCat loads the cat and runs the policy against its stored owner.
// Without a principal the policy rejects before the store is consulted.
func (s *CatService) authorizedCat(ctx context.Context, principal *domain.Identity, action domain.Action, id int64) (*domain.Cat, error) {
	if principal == nil {
		return nil, s.guard.authorize(nil, action, &domain.Target{ID: id})
	}

	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.authorize(principal, action, cat.Target()); err != nil {
		return nil, err
	}
	return cat, nil
}
