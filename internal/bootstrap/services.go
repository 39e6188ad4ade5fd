package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/cipms/config"
	"github.com/target/cipms/internal/adapters/devauth"
	"github.com/target/cipms/internal/adapters/memory"
	"github.com/target/cipms/internal/adapters/password"
	"github.com/target/cipms/internal/adapters/postgres"
	redisadapter "github.com/target/cipms/internal/adapters/redis"
	"github.com/target/cipms/internal/adapters/sqlite"
	"github.com/target/cipms/internal/core"
	"github.com/target/cipms/internal/devseed"
	httpx "github.com/target/cipms/internal/http"
	"github.com/target/cipms/internal/http/ui/viewmodel"
	"github.com/target/cipms/internal/observability/statsd"
	"github.com/target/cipms/internal/ports"
	"github.com/target/cipms/internal/service"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Sessions     *service.SessionRegistry
	Dashboard    *service.DashboardService
	LoginLimiter *httpx.RateLimiter
	DemoLogins   []viewmodel.DemoLogin

	closers []io.Closer
}

// Close releases stores opened while building the container.
func (c *ServiceContainer) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ServiceDeps contains the infrastructure NewServices wires into the container.
type ServiceDeps struct {
	Config *config.AppConfig
	// DB is required when the credential source is postgres.
	DB *sql.DB
	// Redis is required when session storage is redis.
	Redis  redis.UniversalClient
	Logger *slog.Logger
	// TimeProvider anchors the demo catalog and drives the registry clock.
	TimeProvider core.TimeProvider
}

// NewServices builds the session registry, dashboard and login limiter from configuration.
func NewServices(ctx context.Context, deps ServiceDeps) (*ServiceContainer, error) {
	if deps.Config == nil {
		return nil, errors.New("services require an AppConfig")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := deps.TimeProvider
	if clock == nil {
		clock = core.RealTimeProvider{}
	}

	creds, hashes, err := BuildCredentialSource(cfg.Auth, deps.DB)
	if err != nil {
		return nil, err
	}
	verifier, err := BuildVerifier(cfg.Auth.PasswordMode, hashes)
	if err != nil {
		return nil, err
	}
	sink, err := BuildMetrics(cfg.Metrics, logger)
	if err != nil {
		return nil, err
	}
	storage, closer, err := BuildStorage(ctx, StorageDeps{Config: cfg.Session, Redis: deps.Redis})
	if err != nil {
		_ = sink.Close()
		return nil, err
	}

	container := &ServiceContainer{
		Sessions: service.NewSessionRegistry(service.SessionRegistryOptions{
			Credentials:  creds,
			Verifier:     verifier,
			Storage:      storage,
			KeyPrefix:    cfg.Session.KeyPrefix,
			IdleTTL:      cfg.Session.IdleTTL,
			TimeProvider: clock,
			Logger:       logger.With("component", "sessions"),
			Metrics:      sink,
		}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Catalog:      devseed.NewCatalog(clock.Now()),
			TimeProvider: clock,
		}),
		LoginLimiter: httpx.NewRateLimiter(cfg.HTTP.LoginRatePerMinute, cfg.HTTP.LoginBurst),
	}
	if closer != nil {
		container.closers = append(container.closers, closer)
	}
	if sink.Enabled() {
		container.closers = append(container.closers, sink)
	}
	if cfg.IsDev && cfg.Auth.CredentialSource == config.CredentialSourceStatic {
		container.DemoLogins = DemoLogins()
	}

	logger.Info("services wired",
		"credential_source", cfg.Auth.CredentialSource,
		"password_mode", cfg.Auth.PasswordMode,
		"session_storage", cfg.Session.Storage,
		"idle_ttl", cfg.Session.IdleTTL,
		"metrics", sink.Enabled(),
	)
	return container, nil
}

// BuildMetrics returns a StatsD client; it drops everything when metrics are disabled.
func BuildMetrics(cfg config.MetricsConfig, logger *slog.Logger) (*statsd.Client, error) {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.IsEnabled(),
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	return client, nil
}

// BuildCredentialSource resolves the configured credential source.
// The returned HashSource is nil when the source carries no password hashes.
func BuildCredentialSource(cfg config.AuthConfig, db *sql.DB) (ports.CredentialSource, password.HashSource, error) {
	switch cfg.CredentialSource {
	case config.CredentialSourceYAML:
		src, err := devauth.LoadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load credentials file: %w", err)
		}
		if !src.HasHashes() {
			return src, nil, nil
		}
		return src, src, nil
	case config.CredentialSourcePostgres:
		if db == nil {
			return nil, nil, errors.New("postgres credential source requires a database connection")
		}
		store := postgres.NewCredentialStore(db)
		return store, store, nil
	case config.CredentialSourceStatic, "":
		return devauth.NewDemoSource(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported credential source %q", cfg.CredentialSource)
	}
}

// BuildVerifier resolves the password verifier for mode.
//
//nolint:ireturn // the session layer consumes the verifier through its port.
func BuildVerifier(mode config.PasswordMode, hashes password.HashSource) (ports.PasswordVerifier, error) {
	switch mode {
	case config.PasswordModeArgon2:
		if hashes == nil {
			return nil, errors.New("argon2 password mode requires a credential source with password hashes")
		}
		return password.NewArgon2Verifier(hashes), nil
	case config.PasswordModePresence, "":
		return password.PresenceVerifier{}, nil
	default:
		return nil, fmt.Errorf("unsupported password mode %q", mode)
	}
}

// StorageDeps contains what BuildStorage needs for each backend.
type StorageDeps struct {
	Config config.SessionConfig
	Redis  redis.UniversalClient
}

// BuildStorage opens the persisted-session store. The closer is nil for backends
// that own no resources.
//
//nolint:ireturn // callers only need the port.
func BuildStorage(ctx context.Context, deps StorageDeps) (ports.KeyValueStore, io.Closer, error) {
	switch deps.Config.Storage {
	case config.SessionStorageRedis:
		if deps.Redis == nil {
			return nil, nil, errors.New("redis session storage requires a redis client")
		}
		return redisadapter.NewKeyValueStore(deps.Redis, redisadapter.KeyValueStoreOptions{
			TTL: deps.Config.RedisTTL,
		}), nil, nil
	case config.SessionStorageSQLite:
		store, err := sqlite.Open(ctx, deps.Config.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		return store, store, nil
	case config.SessionStorageMemory, "":
		return memory.NewKeyValueStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session storage %q", deps.Config.Storage)
	}
}

// DemoLogins lists the built-in accounts for the login page hint.
func DemoLogins() []viewmodel.DemoLogin {
	ids := devauth.DemoIdentities()
	out := make([]viewmodel.DemoLogin, 0, len(ids))
	for _, id := range ids {
		out = append(out, viewmodel.DemoLogin{
			RoleLabel: id.Role().Label(),
			Email:     id.Base().Email,
		})
	}
	return out
}

// SeedDemoUsers upserts the demo accounts into Postgres.
func SeedDemoUsers(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := devseed.Run(ctx, postgres.NewCredentialStore(db), devseed.Options{Logger: logger}); err != nil {
		return fmt.Errorf("seed demo users: %w", err)
	}
	return nil
}

// sweepInterval falls back to a minute for unset configs.
func sweepInterval(cfg config.SessionConfig) time.Duration {
	if cfg.SweepInterval <= 0 {
		return time.Minute
	}
	return cfg.SweepInterval
}
