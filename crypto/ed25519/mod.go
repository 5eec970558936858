// Package ed25519 implements the cryptographic primitives for the Edwards 25519
// elliptic curve.
//
// The signatures are standard EdDSA signatures so that they can be verified by
// any node of the network. A signer can be created randomly or derived from a
// seed phrase, in which case the same phrase always produces the same key
// pair.
package ed25519

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ltonetwork/lto/crypto"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/sign/eddsa"
	"go.dedis.ch/kyber/v3/suites"
	"go.dedis.ch/kyber/v3/xof/blake2xb"
	"golang.org/x/xerrors"
)

const (
	// Algorithm is the name of the curve used for the signatures.
	Algorithm = "CURVE-ED25519"

	// PublicKeySize is the length of the binary form of a public key.
	PublicKeySize = 32
)

var suite = suites.MustFind("Ed25519")

// PublicKey is the public key adapter to the Kyber Ed25519 point.
//
// - implements crypto.PublicKey
type PublicKey struct {
	point kyber.Point
}

// NewPublicKey returns a new public key from the data.
func NewPublicKey(data []byte) (PublicKey, error) {
	point := suite.Point()
	err := point.UnmarshalBinary(data)
	if err != nil {
		return PublicKey{}, xerrors.Errorf("couldn't unmarshal point: %v", err)
	}

	return PublicKey{point: point}, nil
}

// NewPublicKeyFromPoint creates a new public key from an existing point.
func NewPublicKeyFromPoint(point kyber.Point) PublicKey {
	return PublicKey{point: point}
}

// MarshalBinary implements encoding.BinaryMarshaler. It produces a slice of
// bytes representing the public key.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	return pk.point.MarshalBinary()
}

// MarshalText implements encoding.TextMarshaler. It returns the base58 text of
// the public key.
func (pk PublicKey) MarshalText() ([]byte, error) {
	buffer, err := pk.MarshalBinary()
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return []byte(base58.Encode(buffer)), nil
}

// Verify implements crypto.PublicKey. It returns nil if the signature matches
// the message for this public key.
func (pk PublicKey) Verify(msg []byte, sig crypto.Signature) error {
	signature, ok := sig.(Signature)
	if !ok {
		return xerrors.Errorf("invalid signature type '%T'", sig)
	}

	err := eddsa.Verify(pk.point, msg, signature.data)
	if err != nil {
		return xerrors.Errorf("eddsa verify failed: %v", err)
	}

	return nil
}

// Equal implements crypto.PublicKey. It returns true if the other public key
// is the same.
func (pk PublicKey) Equal(other interface{}) bool {
	pubkey, ok := other.(PublicKey)
	if !ok {
		return false
	}

	return pubkey.point.Equal(pk.point)
}

// GetPoint returns the kyber.Point.
func (pk PublicKey) GetPoint() kyber.Point {
	return pk.point
}

// String implements fmt.Stringer. It returns the base58 text of the key.
func (pk PublicKey) String() string {
	buffer, err := pk.MarshalText()
	if err != nil {
		return "ed25519:malformed_point"
	}

	return string(buffer)
}

// Signature is the adapter of an EdDSA signature.
//
// - implements crypto.Signature
type Signature struct {
	data []byte
}

// NewSignature returns a new signature from the data.
func NewSignature(data []byte) Signature {
	return Signature{data: data}
}

// MarshalBinary implements encoding.BinaryMarshaler. It returns a slice of
// bytes representing the signature.
func (sig Signature) MarshalBinary() ([]byte, error) {
	return sig.data, nil
}

// Equal implements crypto.Signature. It returns true if both signatures are the
// same.
func (sig Signature) Equal(other crypto.Signature) bool {
	otherSig, ok := other.(Signature)
	if !ok {
		return false
	}

	return bytes.Equal(sig.data, otherSig.data)
}

// Signer implements a signer that is creating EdDSA signatures using the
// private key of the Ed25519 elliptic curve.
//
// - implements crypto.Signer
type Signer struct {
	keyPair *eddsa.EdDSA
}

// NewSigner returns a new random signer.
func NewSigner() Signer {
	return Signer{
		keyPair: eddsa.NewEdDSA(suite.RandomStream()),
	}
}

// NewSignerFromSeed returns the signer derived from the seed phrase. The seed
// is prefixed by a zero nonce and hashed before being expanded into the
// private key.
func NewSignerFromSeed(seed string) Signer {
	return NewSignerFromSeedWithNonce(seed, 0)
}

// NewSignerFromSeedWithNonce returns the signer derived from the seed phrase
// and the nonce. Different nonces produce different accounts for the same
// phrase.
func NewSignerFromSeedWithNonce(seed string, nonce uint32) Signer {
	buffer := make([]byte, 4, 4+len(seed))
	binary.BigEndian.PutUint32(buffer, nonce)
	buffer = append(buffer, seed...)

	material := sha256.Sum256(crypto.SecureHash(buffer))

	return Signer{
		keyPair: eddsa.NewEdDSA(blake2xb.New(material[:])),
	}
}

// NewSignerFromBytes restores a signer from its binary form.
func NewSignerFromBytes(data []byte) (Signer, error) {
	kp := &eddsa.EdDSA{}

	err := kp.UnmarshalBinary(data)
	if err != nil {
		return Signer{}, xerrors.Errorf("couldn't unmarshal key pair: %v", err)
	}

	return Signer{keyPair: kp}, nil
}

// GetPublicKey implements crypto.Signer. It returns the public key of the
// signer that can be used to verify signatures.
func (s Signer) GetPublicKey() crypto.PublicKey {
	return PublicKey{point: s.keyPair.Public}
}

// MarshalBinary implements encoding.BinaryMarshaler. It returns the binary
// form of the key pair.
func (s Signer) MarshalBinary() ([]byte, error) {
	data, err := s.keyPair.MarshalBinary()
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal key pair: %v", err)
	}

	return data, nil
}

// Sign implements crypto.Signer. It signs the message in parameter and returns
// the signature, or an error if it cannot sign.
func (s Signer) Sign(msg []byte) (crypto.Signature, error) {
	sig, err := s.keyPair.Sign(msg)
	if err != nil {
		return nil, xerrors.Errorf("couldn't make eddsa signature: %v", err)
	}

	return Signature{data: sig}, nil
}
