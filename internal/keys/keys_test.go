package keys_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexproof/hexproof/internal/circuit"
	"github.com/hexproof/hexproof/internal/geo2d"
	"github.com/hexproof/hexproof/internal/keys"
)

func TestLoadOrSetupRunsSetupThenReloadsFromDisk(t *testing.T) {
	dir := t.TempDir()

	first, err := keys.LoadOrSetup(dir, geo2d.MaxVertices, circuit.MaxHashes)
	require.NoError(t, err)
	require.NotNil(t, first.PK)
	require.NotNil(t, first.VK)

	second, err := keys.LoadOrSetup(dir, geo2d.MaxVertices, circuit.MaxHashes)
	require.NoError(t, err)
	require.NotNil(t, second.PK)
	require.NotNil(t, second.VK)
}

func TestLoadOrSetupRejectsMismatchedDigest(t *testing.T) {
	dir := t.TempDir()

	_, err := keys.LoadOrSetup(dir, geo2d.MaxVertices, circuit.MaxHashes)
	require.NoError(t, err)

	_, err = keys.LoadOrSetup(dir, geo2d.MaxVertices+1, circuit.MaxHashes)
	require.ErrorIs(t, err, keys.ErrConfigMismatch)
}
