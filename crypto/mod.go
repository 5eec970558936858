// Package crypto defines the cryptographic primitives consumed by the
// transaction builder.
//
// A signer is the private material of an account. It produces signatures over
// the canonical bytes of a transaction that are verifiable against its public
// key. The public key is also the identity of the sender of a transaction.
package crypto

import (
	"encoding"
	"hash"
)

// HashFactory is an interface to produce a hash digest.
type HashFactory interface {
	New() hash.Hash
}

// PublicKey is a public identity that can be used to verify a signature.
type PublicKey interface {
	encoding.BinaryMarshaler
	encoding.TextMarshaler

	// Verify returns nil if the signature matches the message, otherwise an
	// error is returned.
	Verify(msg []byte, sig Signature) error

	// Equal returns true when both objects are similar.
	Equal(other interface{}) bool
}

// Signature is a verifiable element for a unique message.
type Signature interface {
	encoding.BinaryMarshaler

	// Equal returns true when both objects are similar.
	Equal(other Signature) bool
}

// Signer provides the primitives to sign and verify signatures.
type Signer interface {
	// GetPublicKey returns the public key of the signer.
	GetPublicKey() PublicKey

	// Sign returns a signature that will match the message for the signer
	// public key.
	Sign(msg []byte) (Signature, error)
}
