package service

import "errors"

var (
	// ErrInvalidEmail and ErrPasswordRequired reject registration input.
	// Handlers surface these verbatim; any other registration failure is a
	// server fault and must not reach the client.
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordRequired = errors.New("password required")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are never distinguished to the caller.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidToken covers bad signature, malformed token, expiry and a
	// valid token whose subject no longer exists. Uniform on purpose so an
	// attacker cannot probe which emails are registered.
	ErrInvalidToken = errors.New("could not validate credentials")

	// ErrProviderNotConfigured means the completion provider API key is
	// missing. The relay fails before any network I/O.
	ErrProviderNotConfigured = errors.New("completion provider API key not configured")

	// ErrPersistence means the upstream completion succeeded but the
	// exchange could not be stored. Callers must be able to tell this
	// apart from an upstream failure.
	ErrPersistence = errors.New("exchange could not be persisted")
)
