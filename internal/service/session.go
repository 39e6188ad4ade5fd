// Package service provides the session and dashboard services for the placement dashboard.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/observability/metrics"
	"github.com/target/cipms/internal/observability/statsd"
	"github.com/target/cipms/internal/ports"
)

// DefaultStorageKey is the key a standalone session persists its identity under.
const DefaultStorageKey = "cipms_user"

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Credentials ports.CredentialSource
	// Verifier is optional; nil accepts any non-empty password.
	Verifier ports.PasswordVerifier
	// Storage is optional; nil keeps the session in memory only.
	Storage    ports.KeyValueStore
	StorageKey string
	Logger     *slog.Logger
	// Metrics is optional.
	Metrics statsd.Sink
}

// LoginInput carries the login form fields.
type LoginInput struct {
	Email    string
	Password string
	Role     domainauth.Role
}

// LoginResult is delivered by LoginAsync when the attempt settles.
type LoginResult struct {
	Identity domainauth.Identity
	Err      error
}

// SessionService owns the authoritative identity for one logical session.
//
// It starts transitioning with no identity. Restore (or Start) settles the
// initial state from storage; Login and Logout are the only writers of the
// persisted copy afterwards.
type SessionService struct {
	credentials ports.CredentialSource
	verifier    ports.PasswordVerifier
	storage     ports.KeyValueStore
	key         string
	logger      *slog.Logger
	metrics     statsd.Sink

	mu            sync.RWMutex
	identity      domainauth.Identity
	transitioning bool
	// epoch advances on every Logout; a login or restore started under an
	// older epoch must not publish its identity.
	epoch uint64

	// writeMu serialises the persisted-copy writes of Login and Logout.
	writeMu sync.Mutex

	restoreOnce sync.Once
	ready       chan struct{}
}

// NewSessionService constructs a SessionService. Call Restore or Start before serving it.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &SessionService{
		credentials:   opts.Credentials,
		verifier:      opts.Verifier,
		storage:       opts.Storage,
		key:           opts.StorageKey,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
		transitioning: true,
		ready:         make(chan struct{}),
	}
}

// Start runs Restore in the background and returns immediately.
func (s *SessionService) Start(ctx context.Context) {
	go s.Restore(ctx)
}

// Restore loads a previously persisted identity. Only the first call does any work.
// Missing, unreadable or malformed data leaves the session unauthenticated.
func (s *SessionService) Restore(ctx context.Context) {
	s.restoreOnce.Do(func() {
		s.mu.RLock()
		epoch := s.epoch
		s.mu.RUnlock()

		id := s.readPersisted(ctx)

		s.mu.Lock()
		if s.epoch == epoch {
			s.identity = id
		}
		s.transitioning = false
		s.mu.Unlock()

		close(s.ready)
	})
}

func (s *SessionService) readPersisted(ctx context.Context) domainauth.Identity {
	if s.storage == nil {
		return nil
	}
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			s.logger.WarnContext(ctx, "read persisted session", "key", s.key, "error", err)
		}
		return nil
	}
	id, err := domainauth.DecodeIdentity(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "discard persisted session", "key", s.key, "error", err)
		return nil
	}
	return id
}

// Ready is closed once Restore has completed.
func (s *SessionService) Ready() <-chan struct{} {
	return s.ready
}

// State returns a snapshot of the session.
func (s *SessionService) State() domainauth.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domainauth.State{Identity: s.identity, Transitioning: s.transitioning}
}

// Login authenticates the email against the credential source and checks the claimed role.
// It fails with ErrTransitionInProgress while a restore or another login is running.
func (s *SessionService) Login(ctx context.Context, in LoginInput) (domainauth.Identity, error) {
	epoch, err := s.beginTransition()
	if err != nil {
		return nil, err
	}
	return s.completeLogin(ctx, in, epoch)
}

// LoginAsync starts a login and delivers its outcome on the returned channel.
// The transition is claimed before LoginAsync returns, so State reports
// Transitioning until the result is sent.
func (s *SessionService) LoginAsync(ctx context.Context, in LoginInput) <-chan LoginResult {
	out := make(chan LoginResult, 1)
	epoch, err := s.beginTransition()
	if err != nil {
		out <- LoginResult{Err: err}
		close(out)
		return out
	}
	go func() {
		defer close(out)
		id, loginErr := s.completeLogin(ctx, in, epoch)
		out <- LoginResult{Identity: id, Err: loginErr}
	}()
	return out
}

func (s *SessionService) beginTransition() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transitioning {
		return 0, domainauth.ErrTransitionInProgress
	}
	s.transitioning = true
	return s.epoch, nil
}

func (s *SessionService) endTransition() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transitioning = false
}

func (s *SessionService) completeLogin(ctx context.Context, in LoginInput, epoch uint64) (domainauth.Identity, error) {
	defer s.endTransition()

	started := time.Now()
	found, err := s.authenticate(ctx, in)
	metrics.EmitLogin(s.metrics, metrics.LoginMetric{
		Role:     string(in.Role),
		Result:   loginResult(err),
		Duration: time.Since(started),
		Err:      err,
	})
	if err != nil {
		return nil, err
	}

	if !s.commit(ctx, found, epoch) {
		s.logger.InfoContext(ctx, "login discarded", "reason", "logged out while authenticating")
		return nil, domainauth.ErrLoginSuperseded
	}
	return found, nil
}

// commit persists and publishes id unless a Logout ran since epoch.
func (s *SessionService) commit(ctx context.Context, id domainauth.Identity, epoch uint64) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	current := s.epoch
	s.mu.RUnlock()
	if current != epoch {
		return false
	}

	s.persist(ctx, id)

	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
	return true
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, domainauth.ErrCredentialMismatch), errors.Is(err, domainauth.ErrPasswordRequired):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}

func (s *SessionService) authenticate(ctx context.Context, in LoginInput) (domainauth.Identity, error) {
	email := strings.TrimSpace(in.Email)
	if in.Password == "" {
		return nil, domainauth.ErrPasswordRequired
	}
	if s.credentials == nil {
		return nil, errors.New("credential source is not configured")
	}

	found, err := s.credentials.Lookup(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrCredentialNotFound) {
			s.logger.InfoContext(ctx, "login rejected", "reason", "unknown email")
			return nil, domainauth.ErrCredentialMismatch
		}
		return nil, fmt.Errorf("lookup credentials: %w", err)
	}
	if found == nil || found.Role() != in.Role {
		s.logger.InfoContext(ctx, "login rejected", "reason", "role mismatch", "claimed_role", string(in.Role))
		return nil, domainauth.ErrCredentialMismatch
	}

	if s.verifier != nil {
		if verr := s.verifier.Verify(ctx, email, in.Password); verr != nil {
			s.logger.InfoContext(ctx, "login rejected", "reason", "password", "error", verr)
			return nil, domainauth.ErrCredentialMismatch
		}
	}
	return found, nil
}

func (s *SessionService) persist(ctx context.Context, id domainauth.Identity) {
	if s.storage == nil {
		return
	}
	data, err := domainauth.EncodeIdentity(id)
	if err != nil {
		s.logger.ErrorContext(ctx, "encode session", "key", s.key, "error", err)
		return
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		s.logger.ErrorContext(ctx, "persist session", "key", s.key, "error", err)
	}
}

// Logout clears the identity and removes the persisted copy. It is idempotent.
// The in-memory identity is cleared even when the storage delete fails.
// A login still authenticating when Logout runs is discarded with ErrLoginSuperseded.
func (s *SessionService) Logout(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.identity = nil
	s.epoch++
	s.mu.Unlock()

	if s.storage == nil {
		metrics.EmitLogout(s.metrics, false)
		return nil
	}
	err := s.storage.Delete(ctx, s.key)
	metrics.EmitLogout(s.metrics, err != nil)
	if err != nil {
		return fmt.Errorf("delete persisted session: %w", err)
	}
	return nil
}

// StorageKey returns the key this session persists under.
func (s *SessionService) StorageKey() string {
	return s.key
}
