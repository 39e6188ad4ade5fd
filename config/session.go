package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SessionStorage selects the durable store for persisted identities.
type SessionStorage string

const (
	// SessionStorageMemory keeps persisted identities in process memory.
	SessionStorageMemory SessionStorage = "memory"
	// SessionStorageRedis stores them in Redis.
	SessionStorageRedis SessionStorage = "redis"
	// SessionStorageSQLite stores them in a local SQLite file.
	SessionStorageSQLite SessionStorage = "sqlite"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStorage.
func (s *SessionStorage) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch SessionStorage(v) {
	case SessionStorageMemory, SessionStorageRedis, SessionStorageSQLite:
		*s = SessionStorage(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStorage: %q (valid options: memory, redis, sqlite)", v)
	}
}

// SessionConfig controls session persistence.
type SessionConfig struct {
	Storage SessionStorage `env:"SESSION_STORAGE" envDefault:"memory"`

	// SQLitePath is the database file used when Storage=sqlite.
	SQLitePath string `env:"SESSION_SQLITE_PATH" envDefault:"cipms.db"`

	// KeyPrefix prefixes per-client storage keys on the web server.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"cipms_user:"`

	// RedisTTL expires persisted identities in Redis. Zero keeps them until logout.
	RedisTTL time.Duration `env:"SESSION_REDIS_TTL" envDefault:"168h"`

	// IdleTTL evicts in-memory sessions that saw no request for this long.
	IdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`

	// SweepInterval is how often idle sessions are evicted.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.Storage == "" {
		s.Storage = SessionStorageMemory
	}
	s.SQLitePath = strings.TrimSpace(s.SQLitePath)
	if s.KeyPrefix == "" {
		s.KeyPrefix = "cipms_user:"
	}
	if s.RedisTTL < 0 {
		s.RedisTTL = 0
	}
	if s.IdleTTL < 0 {
		s.IdleTTL = 0
	}
	if s.SweepInterval <= 0 {
		s.SweepInterval = time.Minute
	}
}

// Validate checks storage-specific requirements.
func (s *SessionConfig) Validate() error {
	if s.Storage == SessionStorageSQLite && s.SQLitePath == "" {
		return errors.New("SESSION_SQLITE_PATH is required when SESSION_STORAGE=sqlite")
	}
	return nil
}
