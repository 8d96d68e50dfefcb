package api

import (
	"context"
	"sort"
	"sync"

	"github.com/sssf/cats-api/internal/core/domain"
)

// memUsers is an in-memory ports.UserRepository.
type memUsers struct {
	mu    sync.Mutex
	next  int64
	creds map[int64]domain.Credential
}

func newMemUsers() *memUsers {
	return &memUsers{creds: make(map[int64]domain.Credential)}
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.creds {
		if c.Email == email {
			cred := c
			return &cred, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.creds[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{Identity: c.Identity, Email: c.Email}, nil
}

func (r *memUsers) List(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.creds))
	for _, c := range r.creds {
		out = append(out, domain.User{Identity: c.Identity, Email: c.Email})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUsers) Create(_ context.Context, cred domain.Credential) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.creds {
		if c.Email == cred.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.next++
	cred.Identity.ID = r.next
	r.creds[cred.Identity.ID] = cred
	return &domain.User{Identity: cred.Identity, Email: cred.Email}, nil
}

func (r *memUsers) Update(_ context.Context, id int64, p domain.CredentialPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.creds[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if p.Name != nil {
		c.Identity.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.PasswordHash != nil {
		c.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		c.Identity.Role = *p.Role
	}
	r.creds[id] = c
	return nil
}

func (r *memUsers) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.creds[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.creds, id)
	return nil
}

// memCats is an in-memory ports.CatRepository joining owner names from users.
type memCats struct {
	mu    sync.Mutex
	next  int64
	cats  map[int64]domain.Cat
	users *memUsers
}

func newMemCats(users *memUsers) *memCats {
	return &memCats{cats: make(map[int64]domain.Cat), users: users}
}

func (r *memCats) withOwner(c domain.Cat) domain.Cat {
	if u, err := r.users.FindByID(context.Background(), c.Owner.ID); err == nil {
		c.Owner.Name = u.Name
	}
	return c
}

func (r *memCats) List(context.Context) ([]domain.Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Cat, 0, len(r.cats))
	for _, c := range r.cats {
		out = append(out, r.withOwner(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCats) FindByID(_ context.Context, id int64) (*domain.Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cats[id]
	if !ok {
		return nil, domain.ErrCatNotFound
	}
	c = r.withOwner(c)
	return &c, nil
}

func (r *memCats) Create(_ context.Context, cat domain.Cat) (*domain.Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	cat.ID = r.next
	cat.Owner = domain.Owner{ID: cat.Owner.ID}
	r.cats[cat.ID] = cat
	return &cat, nil
}

func (r *memCats) Update(_ context.Context, id int64, p domain.CatPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cats[id]
	if !ok {
		return domain.ErrCatNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Weight != nil {
		c.Weight = *p.Weight
	}
	if p.OwnerID != nil {
		c.Owner.ID = *p.OwnerID
	}
	if p.Filename != nil {
		c.Filename = *p.Filename
	}
	if p.Birthdate != nil {
		c.Birthdate = *p.Birthdate
	}
	if p.Coords != nil {
		c.Coords = *p.Coords
	}
	r.cats[id] = c
	return nil
}

func (r *memCats) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cats[id]; !ok {
		return domain.ErrCatNotFound
	}
	delete(r.cats, id)
	return nil
}

// verdicts collects audit events synchronously.
type verdicts struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (v *verdicts) Record(ev domain.AuditEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, ev)
}

func (v *verdicts) denied() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for _, ev := range v.events {
		if !ev.Allowed {
			n++
		}
	}
	return n
}
