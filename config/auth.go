package config

import (
	"errors"
	"fmt"
	"strings"
)

// CredentialSourceKind selects where login records come from.
type CredentialSourceKind string

const (
	// CredentialSourceStatic uses the four built-in demo accounts.
	CredentialSourceStatic CredentialSourceKind = "static"
	// CredentialSourceYAML loads accounts from AUTH_CREDENTIALS_FILE.
	CredentialSourceYAML CredentialSourceKind = "yaml"
	// CredentialSourcePostgres reads accounts from the placement_users table.
	CredentialSourcePostgres CredentialSourceKind = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for CredentialSourceKind.
func (k *CredentialSourceKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch CredentialSourceKind(v) {
	case CredentialSourceStatic, CredentialSourceYAML, CredentialSourcePostgres:
		*k = CredentialSourceKind(v)
		return nil
	default:
		return fmt.Errorf("invalid CredentialSource: %q (valid options: static, yaml, postgres)", v)
	}
}

// PasswordMode selects how passwords are checked after the email resolves.
type PasswordMode string

const (
	// PasswordModePresence only requires a non-empty password.
	PasswordModePresence PasswordMode = "presence"
	// PasswordModeArgon2 compares against stored Argon2id hashes.
	PasswordModeArgon2 PasswordMode = "argon2"
)

// UnmarshalText implements encoding.TextUnmarshaler for PasswordMode.
func (m *PasswordMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch PasswordMode(v) {
	case PasswordModePresence, PasswordModeArgon2:
		*m = PasswordMode(v)
		return nil
	default:
		return fmt.Errorf("invalid PasswordMode: %q (valid options: presence, argon2)", v)
	}
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	CredentialSource CredentialSourceKind `env:"AUTH_CREDENTIAL_SOURCE" envDefault:"static"`

	// CredentialsFile is the YAML accounts file used when CredentialSource=yaml.
	CredentialsFile string `env:"AUTH_CREDENTIALS_FILE"`

	PasswordMode PasswordMode `env:"AUTH_PASSWORD_MODE" envDefault:"presence"`
}

// Sanitize trims free-form values.
func (a *AuthConfig) Sanitize() {
	a.CredentialsFile = strings.TrimSpace(a.CredentialsFile)
	if a.CredentialSource == "" {
		a.CredentialSource = CredentialSourceStatic
	}
	if a.PasswordMode == "" {
		a.PasswordMode = PasswordModePresence
	}
}

// Validate checks that the selected source can supply what the password mode needs.
func (a *AuthConfig) Validate() error {
	if a.CredentialSource == CredentialSourceYAML && a.CredentialsFile == "" {
		return errors.New("AUTH_CREDENTIALS_FILE is required when AUTH_CREDENTIAL_SOURCE=yaml")
	}
	if a.PasswordMode == PasswordModeArgon2 && a.CredentialSource == CredentialSourceStatic {
		return errors.New("AUTH_PASSWORD_MODE=argon2 needs password hashes; use the yaml or postgres credential source")
	}
	return nil
}
