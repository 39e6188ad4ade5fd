// Package config defines the environment-driven configuration for the CIPMS binaries.
package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Credential source and password verification
//   - session.go: Session persistence and idle eviction
//   - database.go: Postgres and Redis connections
//   - http.go: HTTP server configuration
//   - observability.go: Logging and StatsD metrics
//   - services.go: Service mode configuration
type AppConfig struct {
	// IsDev controls development mode behavior (demo seeding, verbose logs).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	Auth    AuthConfig
	Session SessionConfig

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig

	Log     LogConfig
	Metrics MetricsConfig

	// Services is a comma-separated list of service modes to run.
	Services string `env:"SERVICES" envDefault:"http,session-sweeper"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Session.Sanitize()
	c.Auth.Sanitize()
	c.Log.Sanitize()
	c.Metrics.Sanitize()

	c.detectDevMode()
}

// Validate reports combinations that cannot be wired at startup.
func (c *AppConfig) Validate() error {
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session config: %w", err)
	}
	if _, err := c.GetEnabledServices(); err != nil {
		return fmt.Errorf("services config: %w", err)
	}
	return nil
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// NeedsPostgres reports whether any configured component reads from Postgres.
func (c *AppConfig) NeedsPostgres() bool {
	return c.Auth.CredentialSource == CredentialSourcePostgres
}

// NeedsRedis reports whether any configured component talks to Redis.
func (c *AppConfig) NeedsRedis() bool {
	return c.Session.Storage == SessionStorageRedis
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsSessionSweeperEnabled returns true if idle sessions should be evicted in the background.
func (c *AppConfig) IsSessionSweeperEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeSessionSweeper]
}
