package domain

import "errors"

var (
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrActorMissing       = errors.New("authenticated account no longer exists")
	ErrPostNotFound       = errors.New("post not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrPasswordExpired    = errors.New("password expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication failed")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidDate        = errors.New("invalid date")
)
