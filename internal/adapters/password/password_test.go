package password

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/cipms/internal/domain/auth"
)

func fastParams() *Params {
	return &Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}
}

func TestHash_Format(t *testing.T) {
	hash, err := Hash("secret", fastParams())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"), hash)

	other, err := Hash("secret", fastParams())
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salt must differ between hashes")
}

func TestCompare(t *testing.T) {
	hash, err := Hash("correct horse", fastParams())
	require.NoError(t, err)

	ok, err := Compare("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Compare("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompare_InvalidHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "wrong algorithm", hash: "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5"},
		{name: "bad params", hash: "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5"},
		{name: "bad salt", hash: "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compare("pw", tt.hash)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestCompare_IncompatibleVersion(t *testing.T) {
	_, err := Compare("pw", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5")
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}

func TestPresenceVerifier(t *testing.T) {
	v := PresenceVerifier{}
	assert.NoError(t, v.Verify(context.Background(), "a@example.com", "anything"))
	assert.ErrorIs(t, v.Verify(context.Background(), "a@example.com", ""), domainauth.ErrPasswordRequired)
}

func TestArgon2Verifier(t *testing.T) {
	hash, err := Hash("s3cret", fastParams())
	require.NoError(t, err)
	v := NewArgon2Verifier(StaticHashes{"student@example.com": hash})
	ctx := context.Background()

	t.Run("match", func(t *testing.T) {
		assert.NoError(t, v.Verify(ctx, "Student@Example.com ", "s3cret"))
	})
	t.Run("mismatch", func(t *testing.T) {
		assert.ErrorIs(t, v.Verify(ctx, "student@example.com", "nope"), ErrMismatch)
	})
	t.Run("unknown email", func(t *testing.T) {
		assert.ErrorIs(t, v.Verify(ctx, "faculty@example.com", "s3cret"), ErrNoHash)
	})
	t.Run("empty password", func(t *testing.T) {
		assert.ErrorIs(t, v.Verify(ctx, "student@example.com", ""), domainauth.ErrPasswordRequired)
	})
	t.Run("no hash source", func(t *testing.T) {
		assert.ErrorIs(t, NewArgon2Verifier(nil).Verify(ctx, "student@example.com", "s3cret"), ErrNoHash)
	})
}
