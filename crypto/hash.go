package crypto

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HashAlgorithm is the identifier of a hash function supported by the
// factory.
type HashAlgorithm int

const (
	// Blake2b256 is the algorithm used for transaction identifiers.
	Blake2b256 HashAlgorithm = iota
	// Keccak256 is the legacy Keccak used in address derivation.
	Keccak256
	// Sha256 is the standard SHA-256.
	Sha256
)

// hashFactory is a hash factory that is using the algorithm given at creation.
//
// - implements crypto.HashFactory
type hashFactory struct {
	hashType HashAlgorithm
}

// NewHashFactory returns a new instance of the factory.
func NewHashFactory(a HashAlgorithm) HashFactory {
	return hashFactory{a}
}

// NewSha256Factory returns a new instance of the factory for SHA-256.
func NewSha256Factory() HashFactory {
	return hashFactory{Sha256}
}

// New implements crypto.HashFactory. It returns a new Hash instance.
func (f hashFactory) New() hash.Hash {
	switch f.hashType {
	case Blake2b256:
		// The error is only returned for keys longer than 64 bytes.
		h, _ := blake2b.New256(nil)
		return h
	case Keccak256:
		return sha3.NewLegacyKeccak256()
	case Sha256:
		return sha256.New()
	default:
		panic("unknown hash type")
	}
}

// SecureHash returns keccak256(blake2b256(data)), the digest used to derive
// addresses and seed material.
func SecureHash(data []byte) []byte {
	digest := blake2b.Sum256(data)

	h := sha3.NewLegacyKeccak256()
	h.Write(digest[:])

	return h.Sum(nil)
}
