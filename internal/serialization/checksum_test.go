package serialization_test

import (
	"crypto/sha256"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ninja/internal/serialization"
)

func TestChecksum(t *testing.T) {
	net := nandNetwork(t)

	sum, err := serialization.Checksum(net)
	require.NoError(t, err)
	assert.Equal(t, sha256.Sum256([]byte(nandModel)), sum)

	path := filepath.Join(t.TempDir(), "nand.model")
	require.NoError(t, serialization.SaveFile(path, net))

	fileSum, err := serialization.FileChecksum(path)
	require.NoError(t, err)
	assert.Equal(t, sum, fileSum)
	require.NoError(t, serialization.VerifyFile(path, sum))

	other := sum
	other[0] ^= 0xff
	require.ErrorIs(t, serialization.VerifyFile(path, other), serialization.ErrChecksumMismatch)
}

func TestFileChecksum_Missing(t *testing.T) {
	_, err := serialization.FileChecksum(filepath.Join(t.TempDir(), "none"))
	require.Error(t, err)
}
