package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/target/cipms/internal/core"
	"github.com/target/cipms/internal/observability/metrics"
	"github.com/target/cipms/internal/observability/statsd"
	"github.com/target/cipms/internal/ports"
)

// DefaultClientKeyPrefix prefixes the storage key of every client session.
const DefaultClientKeyPrefix = "cipms_user:"

// SessionRegistryOptions groups dependencies for SessionRegistry.
type SessionRegistryOptions struct {
	Credentials ports.CredentialSource
	Verifier    ports.PasswordVerifier
	Storage     ports.KeyValueStore
	KeyPrefix   string
	// IdleTTL evicts sessions not touched for this long. Zero disables eviction.
	IdleTTL      time.Duration
	TimeProvider core.TimeProvider
	Logger       *slog.Logger
	Metrics      statsd.Sink
}

type registryEntry struct {
	session  *SessionService
	lastSeen time.Time
}

// SessionRegistry holds one SessionService per web client.
// Evicted sessions are rebuilt from storage on the client's next request.
type SessionRegistry struct {
	opts   SessionRegistryOptions
	clock  core.TimeProvider
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*registryEntry
}

// NewSessionRegistry constructs an empty registry.
func NewSessionRegistry(opts SessionRegistryOptions) *SessionRegistry {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultClientKeyPrefix
	}
	if opts.TimeProvider == nil {
		opts.TimeProvider = core.RealTimeProvider{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &SessionRegistry{
		opts:    opts,
		clock:   opts.TimeProvider,
		logger:  opts.Logger,
		entries: make(map[string]*registryEntry),
	}
}

// Get returns the session for clientID, creating and starting it on first use.
// The restore outlives ctx so a cancelled request does not strand the session.
func (r *SessionRegistry) Get(ctx context.Context, clientID string) *SessionService {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[clientID]; ok {
		e.lastSeen = now
		return e.session
	}

	sess := NewSessionService(SessionServiceOptions{
		Credentials: r.opts.Credentials,
		Verifier:    r.opts.Verifier,
		Storage:     r.opts.Storage,
		StorageKey:  r.opts.KeyPrefix + clientID,
		Logger:      r.logger.With("client_id", clientID),
		Metrics:     r.opts.Metrics,
	})
	sess.Start(context.WithoutCancel(ctx))
	r.entries[clientID] = &registryEntry{session: sess, lastSeen: now}
	return sess
}

// Forget drops the in-memory session for clientID. Persisted data is untouched.
func (r *SessionRegistry) Forget(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, clientID)
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts sessions idle since before now-IdleTTL and returns how many were removed.
// Sessions still transitioning are kept.
func (r *SessionRegistry) Sweep(now time.Time) int {
	if r.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-r.opts.IdleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.entries {
		if !e.lastSeen.Before(cutoff) {
			continue
		}
		if e.session.State().Transitioning {
			continue
		}
		delete(r.entries, id)
		removed++
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is cancelled.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) error {
	if r.opts.IdleTTL <= 0 || interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n := r.Sweep(r.clock.Now())
			live := r.Len()
			metrics.EmitSweep(r.opts.Metrics, n, live)
			if n > 0 {
				r.logger.DebugContext(ctx, "evicted idle sessions", "count", n, "remaining", live)
			}
		}
	}
}
