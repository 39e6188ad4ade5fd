package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"strings"
	"sync"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialSource = (*StaticCredentialSource)(nil)
	_ ports.PasswordVerifier = VerifierFunc(nil)
	_ ports.KeyValueStore    = (*MemoryKeyValueStore)(nil)
)

// StaticCredentialSource resolves identities from an in-memory map keyed by email.
type StaticCredentialSource struct {
	LookupFunc func(ctx context.Context, email string) (domainauth.Identity, error)

	Records map[string]domainauth.Identity

	mu    sync.Mutex
	calls int
}

// NewStaticCredentialSource creates a source holding the given identities keyed by their email.
func NewStaticCredentialSource(ids ...domainauth.Identity) *StaticCredentialSource {
	records := make(map[string]domainauth.Identity, len(ids))
	for _, id := range ids {
		records[strings.ToLower(id.Base().Email)] = id
	}
	return &StaticCredentialSource{Records: records}
}

func (s *StaticCredentialSource) Lookup(ctx context.Context, email string) (domainauth.Identity, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.LookupFunc != nil {
		return s.LookupFunc(ctx, email)
	}
	id, ok := s.Records[strings.ToLower(email)]
	if !ok {
		return nil, ports.ErrCredentialNotFound
	}
	return id, nil
}

// Calls returns how many times Lookup ran.
func (s *StaticCredentialSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// VerifierFunc adapts a function to ports.PasswordVerifier.
type VerifierFunc func(ctx context.Context, email, password string) error

func (f VerifierFunc) Verify(ctx context.Context, email, password string) error {
	if f == nil {
		return nil
	}
	return f(ctx, email, password)
}

// MemoryKeyValueStore is an in-memory key-value store for unit tests.
// Error hooks let tests simulate storage failures.
type MemoryKeyValueStore struct {
	mu     sync.Mutex
	values map[string][]byte

	GetErr    error
	SetErr    error
	DeleteErr error
}

// NewMemoryKeyValueStore creates an empty store.
func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{values: make(map[string][]byte)}
}

func (m *MemoryKeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.values[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKeyValueStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if key == "" {
		return errors.New("key cannot be empty")
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKeyValueStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.values, key)
	return nil
}

// Has reports whether key is currently stored.
func (m *MemoryKeyValueStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

// Put stores raw bytes without going through the error hooks.
func (m *MemoryKeyValueStore) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
}
