// Package devauth provides the fixed demo credential table and a YAML-backed
// variant for local development.
package devauth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/ports"
)

var _ ports.CredentialSource = (*Source)(nil)

// Source implements ports.CredentialSource over an in-memory table keyed by email.
// It also serves stored password hashes, when the table was loaded with any.
type Source struct {
	records map[string]domainauth.Identity
	hashes  map[string]string
}

// NewSource builds a Source from identities. Emails are matched case-insensitively.
func NewSource(ids ...domainauth.Identity) (*Source, error) {
	s := &Source{
		records: make(map[string]domainauth.Identity, len(ids)),
		hashes:  make(map[string]string),
	}
	for _, id := range ids {
		if err := s.add(id, ""); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewDemoSource returns the four demo accounts, one per role.
func NewDemoSource() *Source {
	s, err := NewSource(DemoIdentities()...)
	if err != nil {
		panic(fmt.Sprintf("devauth: invalid demo table: %v", err))
	}
	return s
}

func (s *Source) add(id domainauth.Identity, hash string) error {
	if id == nil {
		return errors.New("devauth: nil identity")
	}
	key := normalizeEmail(id.Base().Email)
	if key == "" {
		return errors.New("devauth: identity email is required")
	}
	if _, dup := s.records[key]; dup {
		return fmt.Errorf("devauth: duplicate email %q", key)
	}
	s.records[key] = id
	if hash != "" {
		s.hashes[key] = hash
	}
	return nil
}

// Lookup returns the identity registered for email.
func (s *Source) Lookup(_ context.Context, email string) (domainauth.Identity, error) {
	id, ok := s.records[normalizeEmail(email)]
	if !ok {
		return nil, ports.ErrCredentialNotFound
	}
	return id, nil
}

// PasswordHash returns the stored Argon2id hash for email, if the table carries one.
func (s *Source) PasswordHash(_ context.Context, email string) (string, error) {
	hash, ok := s.hashes[normalizeEmail(email)]
	if !ok {
		return "", ports.ErrCredentialNotFound
	}
	return hash, nil
}

// Identities returns all records ordered by email.
func (s *Source) Identities() []domainauth.Identity {
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]domainauth.Identity, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.records[k])
	}
	return out
}

// HasHashes reports whether any record carries a password hash.
func (s *Source) HasHashes() bool {
	return len(s.hashes) > 0
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
