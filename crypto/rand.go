package crypto

import (
	"crypto/rand"
	"io"

	"golang.org/x/xerrors"
)

// SecureRandom reads from the random source of the operating system. It is
// used to generate the seed phrases of new accounts.
//
// - implements io.Reader
type SecureRandom struct{}

// Read implements io.Reader. It either fills the whole buffer or returns an
// error.
func (SecureRandom) Read(buffer []byte) (int, error) {
	n, err := io.ReadFull(rand.Reader, buffer)
	if err != nil {
		return n, xerrors.Errorf("entropy source failed: %v", err)
	}

	return n, nil
}
