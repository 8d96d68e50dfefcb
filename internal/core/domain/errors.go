package domain

import "errors"

// Authentication failures.
var (
	ErrInvalidCredentials = errors.New("invalid username/password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Authorization and record errors.
var (
	ErrForbidden    = errors.New("not permitted")
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrCatNotFound  = errors.New("cat not found")
	ErrNoChanges    = errors.New("no fields to update")
	ErrInvalidInput = errors.New("invalid input")
)
