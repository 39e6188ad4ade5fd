package ports_test

import (
	"testing"

	mocks "github.com/target/cipms/internal/mocks/auth"
	"github.com/target/cipms/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.CredentialSource = (*mocks.StaticCredentialSource)(nil)
	var _ ports.PasswordVerifier = mocks.VerifierFunc(nil)
	var _ ports.KeyValueStore = (*mocks.MemoryKeyValueStore)(nil)
}
