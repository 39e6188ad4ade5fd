package auth

import "errors"

var (
	// ErrCredentialMismatch is returned by login when no record matches the email
	// or the record's role differs from the claimed role. The two causes are not
	// distinguished so callers cannot discover which emails exist.
	ErrCredentialMismatch = errors.New("invalid credentials or role mismatch")

	// ErrMalformedPersistedSession marks persisted identity data that cannot be decoded.
	ErrMalformedPersistedSession = errors.New("malformed persisted session")

	// ErrUnrecognizedRole marks a role value outside the four known variants.
	ErrUnrecognizedRole = errors.New("unrecognized role")

	// ErrTransitionInProgress is returned when login is attempted while another
	// login or the startup restore is still running.
	ErrTransitionInProgress = errors.New("session transition in progress")

	// ErrLoginSuperseded is returned by a login that was still running when
	// Logout cleared the session. The login result is discarded.
	ErrLoginSuperseded = errors.New("login superseded by logout")

	// ErrPasswordRequired is returned when the password field is empty.
	ErrPasswordRequired = errors.New("password is required")
)
