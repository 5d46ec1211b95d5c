package serialization

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/ninja/internal/nn"
)

// ErrChecksumMismatch is returned by VerifyFile when a model file does not
// hash to the expected value.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Checksum returns the SHA-256 of the model text WriteModel produces for net.
func Checksum(net *nn.Network) ([32]byte, error) {
	h := sha256.New()
	if err := WriteModel(h, net); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// FileChecksum returns the SHA-256 of the file at path without loading it
// into memory.
func FileChecksum(path string) ([32]byte, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model files
	f, err := os.Open(path)
	if err != nil {
		return [32]byte{}, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return [32]byte{}, fmt.Errorf("failed to read model: %w", err)
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// VerifyFile compares the checksum of the file at path against want.
func VerifyFile(path string, want [32]byte) error {
	got, err := FileChecksum(path)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%s: got %x, want %x: %w", path, got, want, ErrChecksumMismatch)
	}
	return nil
}
