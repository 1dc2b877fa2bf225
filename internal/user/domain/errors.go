package domain

import "errors"

// Sentinel errors for the credential and token lifecycle. Handlers map these
// to HTTP status codes with errors.Is.
var (
	// ErrInvalidInput covers malformed or too-short registration fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUsernameTaken is returned when the username already exists
	// (case-sensitive exact match).
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials is the single failure for login: unknown user,
	// inactive user and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned for lookups of absent users.
	ErrUserNotFound = errors.New("user not found")
)
