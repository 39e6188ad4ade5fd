package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/cipms/config"
	"github.com/target/cipms/internal/adapters/devauth"
	"github.com/target/cipms/internal/adapters/memory"
	"github.com/target/cipms/internal/adapters/password"
	"github.com/target/cipms/internal/adapters/sqlite"
	"github.com/target/cipms/internal/core"
	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/ports"
	"github.com/target/cipms/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCredentials(t *testing.T, hash string) string {
	t.Helper()
	body := "users:\n" +
		"  - id: \"21\"\n" +
		"    email: asha@campus.edu\n" +
		"    role: faculty\n" +
		"    firstName: Asha\n" +
		"    lastName: Rao\n"
	if hash != "" {
		body += "    passwordHash: \"" + hash + "\"\n"
	}
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestBuildCredentialSource_Static(t *testing.T) {
	creds, hashes, err := BuildCredentialSource(config.AuthConfig{CredentialSource: config.CredentialSourceStatic}, nil)
	require.NoError(t, err)
	assert.Nil(t, hashes)

	id, err := creds.Lookup(context.Background(), devauth.DemoRecruiterEmail)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleRecruiter, id.Role())
}

func TestBuildCredentialSource_YAML(t *testing.T) {
	path := writeCredentials(t, "")
	creds, hashes, err := BuildCredentialSource(config.AuthConfig{
		CredentialSource: config.CredentialSourceYAML,
		CredentialsFile:  path,
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, hashes, "a file without hashes offers no hash source")

	id, err := creds.Lookup(context.Background(), "ASHA@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleFaculty, id.Role())

	_, _, err = BuildCredentialSource(config.AuthConfig{
		CredentialSource: config.CredentialSourceYAML,
		CredentialsFile:  filepath.Join(t.TempDir(), "missing.yaml"),
	}, nil)
	assert.Error(t, err)
}

func TestBuildCredentialSource_PostgresNeedsDB(t *testing.T) {
	_, _, err := BuildCredentialSource(config.AuthConfig{CredentialSource: config.CredentialSourcePostgres}, nil)
	assert.Error(t, err)
}

func TestBuildVerifier(t *testing.T) {
	v, err := BuildVerifier(config.PasswordModePresence, nil)
	require.NoError(t, err)
	assert.IsType(t, password.PresenceVerifier{}, v)

	_, err = BuildVerifier(config.PasswordModeArgon2, nil)
	require.Error(t, err)

	_, err = BuildVerifier(config.PasswordMode("plaintext"), nil)
	require.Error(t, err)
}

func TestBuildVerifier_Argon2FromCredentialsFile(t *testing.T) {
	hash, err := password.Hash("s3cret", &password.Params{
		Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	require.NoError(t, err)

	_, hashes, err := BuildCredentialSource(config.AuthConfig{
		CredentialSource: config.CredentialSourceYAML,
		CredentialsFile:  writeCredentials(t, hash),
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, hashes)

	v, err := BuildVerifier(config.PasswordModeArgon2, hashes)
	require.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, v.Verify(ctx, "asha@campus.edu", "s3cret"))
	assert.ErrorIs(t, v.Verify(ctx, "asha@campus.edu", "guess"), password.ErrMismatch)
}

func TestBuildStorage(t *testing.T) {
	ctx := context.Background()

	store, closer, err := BuildStorage(ctx, StorageDeps{Config: config.SessionConfig{Storage: config.SessionStorageMemory}})
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.IsType(t, &memory.KeyValueStore{}, store)

	_, _, err = BuildStorage(ctx, StorageDeps{Config: config.SessionConfig{Storage: config.SessionStorageRedis}})
	require.Error(t, err)

	store, closer, err = BuildStorage(ctx, StorageDeps{Config: config.SessionConfig{
		Storage:    config.SessionStorageSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "sessions.db"),
	}})
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer closer.Close()
	assert.IsType(t, &sqlite.KeyValueStore{}, store)

	require.NoError(t, store.Set(ctx, "cipms_user:a", []byte("{}")))
	_, err = store.Get(ctx, "cipms_user:b")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestNewServices_WiresRegistry(t *testing.T) {
	cfg := &config.AppConfig{
		IsDev:    true,
		Auth:     config.AuthConfig{CredentialSource: config.CredentialSourceStatic, PasswordMode: config.PasswordModePresence},
		Session:  config.SessionConfig{Storage: config.SessionStorageMemory, KeyPrefix: "cipms_user:", IdleTTL: time.Minute},
		HTTP:     config.HTTPConfig{LoginRatePerMinute: 20, LoginBurst: 5},
		Services: "http",
	}
	clock := core.NewFixedTimeProvider(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	c, err := NewServices(context.Background(), ServiceDeps{Config: cfg, Logger: discardLogger(), TimeProvider: clock})
	require.NoError(t, err)
	defer c.Close()

	require.NotNil(t, c.LoginLimiter)
	assert.Len(t, c.DemoLogins, 4)
	assert.Equal(t, devauth.DemoStudentEmail, c.DemoLogins[0].Email)

	ctx := context.Background()
	sess := c.Sessions.Get(ctx, "client-1")
	select {
	case <-sess.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not restore")
	}
	id, err := sess.Login(ctx, service.LoginInput{Email: devauth.DemoPlacementEmail, Password: "pw", Role: domainauth.RolePlacementCell})
	require.NoError(t, err)

	sum, err := c.Dashboard.Summary(ctx, id)
	require.NoError(t, err)
	assert.NotEmpty(t, sum.Stats)
}

func TestNewServices_NoDemoLoginsOutsideDev(t *testing.T) {
	cfg := &config.AppConfig{
		Auth:    config.AuthConfig{CredentialSource: config.CredentialSourceStatic},
		Session: config.SessionConfig{Storage: config.SessionStorageMemory},
	}
	c, err := NewServices(context.Background(), ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)
	assert.Empty(t, c.DemoLogins)
}

func TestNewServices_Errors(t *testing.T) {
	_, err := NewServices(context.Background(), ServiceDeps{})
	require.Error(t, err)

	_, err = NewServices(context.Background(), ServiceDeps{
		Config: &config.AppConfig{
			Auth:    config.AuthConfig{CredentialSource: config.CredentialSourceStatic, PasswordMode: config.PasswordModeArgon2},
			Session: config.SessionConfig{Storage: config.SessionStorageMemory},
		},
		Logger: discardLogger(),
	})
	assert.Error(t, err)
}

func TestBuildMetrics(t *testing.T) {
	client, err := BuildMetrics(config.MetricsConfig{Enabled: false, StatsdAddress: "127.0.0.1:8125"}, discardLogger())
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	client, err = BuildMetrics(config.MetricsConfig{Enabled: true, StatsdAddress: "127.0.0.1:8125", Prefix: "cipms"}, discardLogger())
	require.NoError(t, err)
	assert.True(t, client.Enabled())
	require.NoError(t, client.Close())

	_, err = BuildMetrics(config.MetricsConfig{Enabled: true, StatsdAddress: "not an address"}, discardLogger())
	assert.Error(t, err)
}

func TestServiceContainer_CloseNil(t *testing.T) {
	var c *ServiceContainer
	assert.NoError(t, c.Close())
}

func TestDemoLogins(t *testing.T) {
	logins := DemoLogins()
	require.Len(t, logins, 4)
	for _, l := range logins {
		assert.NotEmpty(t, l.RoleLabel)
		assert.Contains(t, l.Email, "@example.com")
	}
}
