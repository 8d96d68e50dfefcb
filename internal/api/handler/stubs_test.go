package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/sssf/cats-api/internal/api/middleware"
	"github.com/sssf/cats-api/internal/core/domain"
	"github.com/sssf/cats-api/internal/core/ports"
)

func newContext(method, target string, body io.Reader, principal *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		middleware.SetIdentity(c, principal)
	}
	return c, rec
}

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.Identity, error)
	calls   int
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	_, id, err := s.loginFn(ctx, email, password)
	return id, err
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	s.calls++
	return s.loginFn(ctx, email, password)
}

type stubLimiter struct {
	blocked  bool
	err      error
	failed   []string
	resetKey string
}

func (s *stubLimiter) Blocked(_ context.Context, _ string) (bool, error) {
	return s.blocked, s.err
}

func (s *stubLimiter) Fail(_ context.Context, key string) error {
	s.failed = append(s.failed, key)
	return s.err
}

func (s *stubLimiter) Reset(_ context.Context, key string) error {
	s.resetKey = key
	return s.err
}

type stubUserService struct {
	registerFn func(in ports.RegisterInput) (*domain.User, error)
	updateFn   func(principal *domain.Identity, id int64, patch domain.UserPatch) error
	users      []domain.User
	err        error

	gotPrincipal *domain.Identity
	gotPatch     domain.UserPatch
	gotID        int64
}

func (s *stubUserService) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(in)
}

func (s *stubUserService) List(context.Context) ([]domain.User, error) {
	return s.users, s.err
}

func (s *stubUserService) Get(_ context.Context, id int64) (*domain.User, error) {
	s.gotID = id
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) UpdateCurrent(_ context.Context, principal *domain.Identity, patch domain.UserPatch) error {
	s.gotPrincipal, s.gotPatch = principal, patch
	if principal == nil {
		return domain.ErrUnauthenticated
	}
	return s.err
}

func (s *stubUserService) DeleteCurrent(_ context.Context, principal *domain.Identity) error {
	s.gotPrincipal = principal
	if principal == nil {
		return domain.ErrUnauthenticated
	}
	return s.err
}

func (s *stubUserService) Update(_ context.Context, principal *domain.Identity, id int64, patch domain.UserPatch) error {
	s.gotPrincipal, s.gotID, s.gotPatch = principal, id, patch
	if s.updateFn != nil {
		return s.updateFn(principal, id, patch)
	}
	return s.err
}

func (s *stubUserService) Delete(_ context.Context, principal *domain.Identity, id int64) error {
	s.gotPrincipal, s.gotID = principal, id
	return s.err
}

type stubCatService struct {
	cats []domain.Cat
	err  error

	gotPrincipal *domain.Identity
	gotInput     ports.CreateCatInput
	gotPatch     domain.CatPatch
	gotID        int64
}

func (s *stubCatService) List(context.Context) ([]domain.Cat, error) {
	return s.cats, s.err
}

func (s *stubCatService) Get(_ context.Context, id int64) (*domain.Cat, error) {
	for i := range s.cats {
		if s.cats[i].ID == id {
			return &s.cats[i], nil
		}
	}
	return nil, domain.ErrCatNotFound
}

func (s *stubCatService) Create(_ context.Context, principal *domain.Identity, in ports.CreateCatInput) (*domain.Cat, error) {
	s.gotPrincipal, s.gotInput = principal, in
	if s.err != nil {
		return nil, s.err
	}
	owner := in.OwnerID
	if owner == 0 && principal != nil {
		owner = principal.ID
	}
	return &domain.Cat{ID: 1, Name: in.Name, Weight: in.Weight, Owner: domain.Owner{ID: owner}}, nil
}

func (s *stubCatService) Update(_ context.Context, principal *domain.Identity, id int64, patch domain.CatPatch) error {
	s.gotPrincipal, s.gotID, s.gotPatch = principal, id, patch
	return s.err
}

func (s *stubCatService) Delete(_ context.Context, principal *domain.Identity, id int64) error {
	s.gotPrincipal, s.gotID = principal, id
	return s.err
}
