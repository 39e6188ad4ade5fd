package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:     "single service - http",
			input:    "http",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:  "all services with spaces",
			input: " http , session-sweeper ",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:           true,
				ServiceModeSessionSweeper: true,
			},
		},
		{
			name:     "duplicate services",
			input:    "http,http",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "only commas",
			input:       ",,",
			expectError: true,
		},
		{
			name:        "unknown service",
			input:       "http,scheduler",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestValidServiceModes(t *testing.T) {
	modes := ValidServiceModes()
	expected := []ServiceMode{ServiceModeHTTP, ServiceModeSessionSweeper}
	if !reflect.DeepEqual(modes, expected) {
		t.Errorf("expected %v, got %v", expected, modes)
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.CredentialSource != CredentialSourceStatic {
		t.Errorf("expected static credential source, got %q", cfg.Auth.CredentialSource)
	}
	if cfg.Auth.PasswordMode != PasswordModePresence {
		t.Errorf("expected presence password mode, got %q", cfg.Auth.PasswordMode)
	}
	if cfg.Session.Storage != SessionStorageMemory {
		t.Errorf("expected memory storage, got %q", cfg.Session.Storage)
	}
	if cfg.Session.KeyPrefix != "cipms_user:" {
		t.Errorf("unexpected key prefix %q", cfg.Session.KeyPrefix)
	}
	if cfg.Session.IdleTTL != 30*time.Minute {
		t.Errorf("unexpected idle ttl %v", cfg.Session.IdleTTL)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("unexpected addr %q", cfg.HTTP.Addr)
	}
	if !cfg.IsHTTPServerEnabled() || !cfg.IsSessionSweeperEnabled() {
		t.Errorf("expected http and session-sweeper enabled by default")
	}
	if cfg.NeedsPostgres() || cfg.NeedsRedis() {
		t.Errorf("defaults should not need postgres or redis")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("AUTH_CREDENTIAL_SOURCE", "YAML")
	t.Setenv("AUTH_CREDENTIALS_FILE", " /etc/cipms/users.yaml ")
	t.Setenv("AUTH_PASSWORD_MODE", "argon2")
	t.Setenv("SESSION_STORAGE", "redis")
	t.Setenv("SESSION_REDIS_TTL", "2h")
	t.Setenv("HTTP_GATE_WAIT", "1s")
	t.Setenv("DB_NAME", "placements")
	t.Setenv("SERVICES", "http")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expectedAuth := AuthConfig{
		CredentialSource: CredentialSourceYAML,
		CredentialsFile:  "/etc/cipms/users.yaml",
		PasswordMode:     PasswordModeArgon2,
	}
	if !reflect.DeepEqual(cfg.Auth, expectedAuth) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expectedAuth, cfg.Auth)
	}
	if cfg.Session.Storage != SessionStorageRedis || cfg.Session.RedisTTL != 2*time.Hour {
		t.Errorf("unexpected session config %#v", cfg.Session)
	}
	if cfg.HTTP.GateWait != time.Second {
		t.Errorf("unexpected gate wait %v", cfg.HTTP.GateWait)
	}
	if cfg.Postgres.Name != "placements" {
		t.Errorf("unexpected db name %q", cfg.Postgres.Name)
	}
	if !cfg.NeedsRedis() {
		t.Errorf("redis storage should need redis")
	}
	if cfg.IsSessionSweeperEnabled() {
		t.Errorf("sweeper should be disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestAppConfig_ParseEnvRejectsUnknownValues(t *testing.T) {
	tests := map[string]string{
		"AUTH_CREDENTIAL_SOURCE": "ldap",
		"AUTH_PASSWORD_MODE":     "bcrypt",
		"SESSION_STORAGE":        "localstorage",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			var cfg AppConfig
			if err := env.Parse(&cfg); err == nil {
				t.Fatalf("expected parse error for %s=%s", key, value)
			}
		})
	}
}

func TestAuthConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AuthConfig
		wantErr bool
	}{
		{name: "static presence", cfg: AuthConfig{CredentialSource: CredentialSourceStatic, PasswordMode: PasswordModePresence}},
		{name: "yaml without file", cfg: AuthConfig{CredentialSource: CredentialSourceYAML, PasswordMode: PasswordModePresence}, wantErr: true},
		{name: "static argon2", cfg: AuthConfig{CredentialSource: CredentialSourceStatic, PasswordMode: PasswordModeArgon2}, wantErr: true},
		{name: "postgres argon2", cfg: AuthConfig{CredentialSource: CredentialSourcePostgres, PasswordMode: PasswordModeArgon2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSessionConfig_Sanitize(t *testing.T) {
	cfg := SessionConfig{RedisTTL: -time.Second, IdleTTL: -time.Minute}
	cfg.Sanitize()

	if cfg.Storage != SessionStorageMemory {
		t.Errorf("expected memory storage fallback, got %q", cfg.Storage)
	}
	if cfg.RedisTTL != 0 || cfg.IdleTTL != 0 {
		t.Errorf("expected negative durations to clamp to zero, got %v %v", cfg.RedisTTL, cfg.IdleTTL)
	}
	if cfg.SweepInterval != time.Minute {
		t.Errorf("expected default sweep interval, got %v", cfg.SweepInterval)
	}

	sqlite := SessionConfig{Storage: SessionStorageSQLite, SQLitePath: "  "}
	sqlite.Sanitize()
	if err := sqlite.Validate(); err == nil {
		t.Errorf("expected sqlite without path to fail validation")
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{Addr: " ", GateWait: -time.Second, LoginRatePerMinute: -3, LoginBurst: 0}
	cfg.Sanitize()

	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.GateWait != 0 {
		t.Errorf("expected gate wait clamp, got %v", cfg.GateWait)
	}
	if cfg.LoginRatePerMinute != 0 || cfg.LoginBurst != 1 {
		t.Errorf("unexpected rate settings %d/%d", cfg.LoginRatePerMinute, cfg.LoginBurst)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected default shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
}

func TestLogConfig_Sanitize(t *testing.T) {
	cfg := LogConfig{Level: " DEBUG ", Format: "Text"}
	cfg.Sanitize()
	if cfg.SlogLevel() != slog.LevelDebug || cfg.Format != LogFormatText {
		t.Errorf("unexpected log config %#v", cfg)
	}

	cfg = LogConfig{Level: "verbose", Format: "xml"}
	cfg.Sanitize()
	if cfg.SlogLevel() != slog.LevelInfo || cfg.Format != LogFormatJSON {
		t.Errorf("expected fallbacks, got %#v", cfg)
	}
}

func TestMetricsConfig_Sanitize(t *testing.T) {
	cfg := MetricsConfig{Enabled: true, StatsdAddress: "  ", Prefix: " cipms "}
	cfg.Sanitize()
	if cfg.IsEnabled() {
		t.Errorf("expected metrics disabled without an address")
	}
	if cfg.Prefix != "cipms" {
		t.Errorf("prefix not trimmed: %q", cfg.Prefix)
	}

	cfg = MetricsConfig{Enabled: true, StatsdAddress: "statsd:8125"}
	cfg.Sanitize()
	if !cfg.IsEnabled() {
		t.Errorf("expected metrics enabled")
	}
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := AppConfig{Services: "http"}
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Errorf("expected NODE_ENV=development to enable dev mode")
	}
}
