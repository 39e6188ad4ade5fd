package password

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/ports"
)

var (
	// ErrNoHash is returned when no hash is stored for the email.
	ErrNoHash = errors.New("no password hash for email")
	// ErrMismatch is returned when the password does not match the stored hash.
	ErrMismatch = errors.New("password mismatch")
)

var (
	_ ports.PasswordVerifier = PresenceVerifier{}
	_ ports.PasswordVerifier = (*Argon2Verifier)(nil)
)

// PresenceVerifier accepts any non-empty password.
// This matches the documented demo behavior; real deployments use Argon2Verifier.
type PresenceVerifier struct{}

func (PresenceVerifier) Verify(_ context.Context, _ string, password string) error {
	if password == "" {
		return domainauth.ErrPasswordRequired
	}
	return nil
}

// HashSource returns the stored Argon2id hash for an email.
type HashSource interface {
	PasswordHash(ctx context.Context, email string) (string, error)
}

// StaticHashes is a HashSource over an email -> encoded hash map.
type StaticHashes map[string]string

func (h StaticHashes) PasswordHash(_ context.Context, email string) (string, error) {
	hash, ok := h[strings.ToLower(strings.TrimSpace(email))]
	if !ok || hash == "" {
		return "", ErrNoHash
	}
	return hash, nil
}

// Argon2Verifier checks passwords against Argon2id hashes from a HashSource.
type Argon2Verifier struct {
	hashes HashSource
}

// NewArgon2Verifier constructs an Argon2Verifier.
func NewArgon2Verifier(hashes HashSource) *Argon2Verifier {
	return &Argon2Verifier{hashes: hashes}
}

func (v *Argon2Verifier) Verify(ctx context.Context, email, password string) error {
	if password == "" {
		return domainauth.ErrPasswordRequired
	}
	if v.hashes == nil {
		return ErrNoHash
	}
	encoded, err := v.hashes.PasswordHash(ctx, email)
	if err != nil {
		return fmt.Errorf("load password hash: %w", err)
	}
	ok, err := Compare(password, encoded)
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return ErrMismatch
	}
	return nil
}
