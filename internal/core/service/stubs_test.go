package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sssf/cats-api/internal/core/domain"
	"github.com/sssf/cats-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[int64]*domain.Credential
	nextID  int64
	findErr error // if set, FindByEmail returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[int64]*domain.Credential), nextID: 1}
}

func (r *stubUserRepo) seed(name, email, hash string, role domain.Role) domain.Identity {
	id := r.nextID
	r.nextID++
	r.byID[id] = &domain.Credential{
		Identity:     domain.Identity{ID: id, Name: name, Role: role},
		Email:        email,
		PasswordHash: hash,
	}
	return r.byID[id].Identity
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, c := range r.byID {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{Identity: c.Identity, Email: c.Email}, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.byID))
	for _, c := range r.byID {
		users = append(users, domain.User{Identity: c.Identity, Email: c.Email})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *stubUserRepo) Create(_ context.Context, cred domain.Credential) (*domain.User, error) {
	for _, c := range r.byID {
		if c.Email == cred.Email {
			return nil, domain.ErrUserExists
		}
	}
	cred.Identity.ID = r.nextID
	r.nextID++
	clone := cred
	r.byID[cred.Identity.ID] = &clone
	return &domain.User{Identity: cred.Identity, Email: cred.Email}, nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, patch domain.CredentialPatch) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if patch.Name != nil {
		c.Identity.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		c.PasswordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		c.Identity.Role = *patch.Role
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// In-memory cat repository
// ---------------------------------------------------------------------------

type stubCatRepo struct {
	byID      map[int64]*domain.Cat
	nextID    int64
	createErr error
}

func newStubCatRepo() *stubCatRepo {
	return &stubCatRepo{byID: make(map[int64]*domain.Cat), nextID: 1}
}

func (r *stubCatRepo) seed(name string, ownerID int64) domain.Cat {
	cat := domain.Cat{ID: r.nextID, Name: name, Weight: 4, Owner: domain.Owner{ID: ownerID}}
	r.nextID++
	r.byID[cat.ID] = &cat
	return cat
}

func (r *stubCatRepo) List(_ context.Context) ([]domain.Cat, error) {
	cats := make([]domain.Cat, 0, len(r.byID))
	for _, c := range r.byID {
		cats = append(cats, *c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	return cats, nil
}

func (r *stubCatRepo) FindByID(_ context.Context, id int64) (*domain.Cat, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCatNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCatRepo) Create(_ context.Context, cat domain.Cat) (*domain.Cat, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	cat.ID = r.nextID
	r.nextID++
	clone := cat
	r.byID[cat.ID] = &clone
	return &cat, nil
}

func (r *stubCatRepo) Update(_ context.Context, id int64, patch domain.CatPatch) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrCatNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Weight != nil {
		c.Weight = *patch.Weight
	}
	if patch.OwnerID != nil {
		c.Owner = domain.Owner{ID: *patch.OwnerID}
	}
	if patch.Filename != nil {
		c.Filename = *patch.Filename
	}
	if patch.Birthdate != nil {
		c.Birthdate = *patch.Birthdate
	}
	if patch.Coords != nil {
		c.Coords = *patch.Coords
	}
	return nil
}

func (r *stubCatRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCatNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Audit recorder / repository
// ---------------------------------------------------------------------------

type stubRecorder struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *stubRecorder) Record(ev domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *stubRecorder) last() domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type stubAuditRepo struct {
	insertErr error
	inserted  []domain.AuditEvent
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, ev domain.AuditEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, ev)
	return nil
}

// ---------------------------------------------------------------------------
// Plaintext hasher and failing issuer
// ---------------------------------------------------------------------------

// plainHasher keeps tests fast; production uses BcryptHasher.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(p, h string) bool      { return h == "hashed:"+p }

// countingHasher records how often each hashing operation runs.
type countingHasher struct {
	plainHasher
	hashes   int
	verifies int
}

func (h *countingHasher) Hash(p string) (string, error) {
	h.hashes++
	return h.plainHasher.Hash(p)
}

func (h *countingHasher) Verify(p, hash string) bool {
	h.verifies++
	return h.plainHasher.Verify(p, hash)
}

type failingIssuer struct{}

func (failingIssuer) Issue(domain.Identity) (string, error) { return "", errors.New("sign failed") }

var (
	_ ports.UserRepository  = (*stubUserRepo)(nil)
	_ ports.CatRepository   = (*stubCatRepo)(nil)
	_ ports.AuditRecorder   = (*stubRecorder)(nil)
	_ ports.AuditRepository = (*stubAuditRepo)(nil)
	_ ports.PasswordHasher  = plainHasher{}
	_ ports.PasswordHasher  = (*countingHasher)(nil)
)
