package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)
