package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/target/cipms/internal/domain/auth"
)

// ErrCredentialNotFound is returned by CredentialSource when no record exists for an email.
var ErrCredentialNotFound = errors.New("credential not found")

// ErrKeyNotFound is returned by KeyValueStore.Get when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// CredentialSource looks up identity records by login email.
//
// Lookup does not check passwords and does not compare roles; the session
// layer performs the role check itself. Password verification is a separate
// seam (PasswordVerifier) so an integrator has to wire it in deliberately.
//
// Emails match case-insensitively after trimming surrounding whitespace, so
// " Student@Example.com" resolves the same record as "student@example.com".
type CredentialSource interface {
	Lookup(ctx context.Context, email string) (domainauth.Identity, error)
}

// PasswordVerifier checks a password for an email that CredentialSource already resolved.
// Implementations return a non-nil error when the password must be rejected.
type PasswordVerifier interface {
	Verify(ctx context.Context, email, password string) error
}

// KeyValueStore is the durable local store that holds the persisted session record.
type KeyValueStore interface {
	// Get returns ErrKeyNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
}
