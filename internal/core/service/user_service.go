package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sssf/cats-api/internal/core/domain"
	"github.com/sssf/cats-api/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	guard  guard
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, audit ports.AuditRecorder, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, guard: newGuard(audit), logger: logger}
}

// Register creates an account with role user. The password is hashed before
// it reaches the repository.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, domain.Credential{
		Identity:     domain.Identity{Name: name, Role: domain.RoleUser},
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateCurrent applies patch to the principal's own record. The role is
// never changed through this path.
func (s *UserService) UpdateCurrent(ctx context.Context, principal *domain.Identity, patch domain.UserPatch) error {
	if err := s.guard.authorize(principal, domain.ActionUpdateSelf, selfTarget(principal)); err != nil {
		return err
	}
	patch.Role = nil
	return s.apply(ctx, principal.ID, patch)
}

func (s *UserService) DeleteCurrent(ctx context.Context, principal *domain.Identity) error {
	if err := s.guard.authorize(principal, domain.ActionDeleteSelf, selfTarget(principal)); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, principal.ID); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", principal.ID).Msg("user deleted own account")
	return nil
}

// Update applies patch to any user record. Admin only.
func (s *UserService) Update(ctx context.Context, principal *domain.Identity, id int64, patch domain.UserPatch) error {
	if err := s.guard.authorize(principal, domain.ActionUpdateUser, &domain.Target{ID: id}); err != nil {
		return err
	}
	return s.apply(ctx, id, patch)
}

// Delete removes any user record. Admin only.
func (s *UserService) Delete(ctx context.Context, principal *domain.Identity, id int64) error {
	if err := s.guard.authorize(principal, domain.ActionDeleteUser, &domain.Target{ID: id}); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Int64("by", principal.ID).Msg("user deleted")
	return nil
}

func (s *UserService) apply(ctx context.Context, id int64, patch domain.UserPatch) error {
	if patch.Empty() {
		return domain.ErrNoChanges
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return domain.ErrInvalidInput
	}

	out := domain.CredentialPatch{Role: patch.Role}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.ErrInvalidInput
		}
		out.Name = &name
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if email == "" {
			return domain.ErrInvalidInput
		}
		out.Email = &email
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return domain.ErrInvalidInput
		}
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		out.PasswordHash = &hash
	}

	if err := s.repo.Update(ctx, id, out); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user updated")
	return nil
}

// selfTarget is the record a self-scoped action applies to.
func selfTarget(principal *domain.Identity) *domain.Target {
	if principal == nil {
		return nil
	}
	return &domain.Target{ID: principal.ID}
}
