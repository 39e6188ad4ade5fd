package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/cipms/internal/ports"
)

func TestKeyValueStore(t *testing.T) {
	s := NewKeyValueStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "cipms_user")
	require.ErrorIs(t, err, ports.ErrKeyNotFound)

	raw := []byte(`{"role":"student"}`)
	require.NoError(t, s.Set(ctx, "cipms_user", raw))
	raw[0] = 'x'

	got, err := s.Get(ctx, "cipms_user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"student"}`, string(got))
	assert.Equal(t, 1, s.Len())

	got[0] = 'y'
	again, err := s.Get(ctx, "cipms_user")
	require.NoError(t, err)
	assert.Equal(t, byte('{'), again[0])

	require.NoError(t, s.Delete(ctx, "cipms_user"))
	require.NoError(t, s.Delete(ctx, "cipms_user"))
	assert.Equal(t, 0, s.Len())

	assert.Error(t, s.Set(ctx, "", []byte("v")))
}
