package loader

import (
	"io"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ltonetwork/lto/crypto"
	"golang.org/x/xerrors"
)

// SeedSize is the number of random bytes of a generated seed phrase.
const SeedSize = 32

// SeedGenerator generates random seed phrases as the base58 text of random
// bytes.
//
// - implements loader.Generator
type SeedGenerator struct {
	rand io.Reader
}

// NewSeedGenerator returns a generator that reads from a cryptographically
// secure source.
func NewSeedGenerator() SeedGenerator {
	return SeedGenerator{
		rand: crypto.SecureRandom{},
	}
}

// Generate implements loader.Generator. It returns a new seed phrase.
func (g SeedGenerator) Generate() ([]byte, error) {
	buffer := make([]byte, SeedSize)

	_, err := io.ReadFull(g.rand, buffer)
	if err != nil {
		return nil, xerrors.Errorf("failed to read random bytes: %v", err)
	}

	return []byte(base58.Encode(buffer)), nil
}
