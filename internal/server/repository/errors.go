package repository

import "errors"

var (
	// ErrDuplicateEmail indicates an attempt to register an email that is
	// already taken. The existing user is left untouched.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
)
