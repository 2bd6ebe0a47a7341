package domain

import "errors"

var (
	// ErrValidation marks bad or missing input. Wrap it with the first
	// failing field's message.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken / ErrUserNameTaken distinguish the two uniqueness
	// conflicts at registration. Email is checked first.
	ErrEmailTaken    = errors.New("email already in use")
	ErrUserNameTaken = errors.New("username already in use")

	// ErrInvalidCredentials is deliberately generic: a wrong password and an
	// unknown email must be indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTooManyAttempts is returned when the login throttle is engaged.
	ErrTooManyAttempts = errors.New("too many login attempts")

	// ErrSessionNotFound covers a missing, expired or invalidated session.
	// Route guards treat it as "no session", not as a user-facing error.
	ErrSessionNotFound = errors.New("session not found")

	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrForbidden       = errors.New("access forbidden")
)
