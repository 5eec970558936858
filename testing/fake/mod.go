// Package fake provides fake implementations for interfaces commonly used in
// the repository.
//
// The implementations offer configuration to return errors when it is needed
// by the unit test and it is also possible to record the call of functions of
// an object in some cases.
package fake

import (
	"bytes"
	"hash"
	"time"

	"github.com/ltonetwork/lto/crypto"
	"golang.org/x/xerrors"
)

var fakeErr = xerrors.New("fake error")

// GetError returns the fake error.
func GetError() error {
	return fakeErr
}

// Err returns the expected error message of a fake error wrapped with the
// given message.
func Err(msg string) string {
	return msg + ": fake error"
}

// Call is a tool to keep track of a function calls.
type Call struct {
	calls [][]interface{}
}

// Get returns the nth call ith parameter.
func (c *Call) Get(n, i int) interface{} {
	return c.calls[n][i]
}

// Len returns the number of calls.
func (c *Call) Len() int {
	if c == nil {
		return 0
	}

	return len(c.calls)
}

// Add adds a call to the list.
func (c *Call) Add(args ...interface{}) {
	if c == nil {
		return
	}

	c.calls = append(c.calls, args)
}

// SignatureByte is the byte returned when marshaling a fake signature.
const SignatureByte = 0xfe

// Signature is a fake implementation of the signature.
//
// - implements crypto.Signature
type Signature struct {
	data []byte
	err  error
}

// NewSignature returns a fake signature that marshals to the data.
func NewSignature(data []byte) Signature {
	return Signature{data: data}
}

// NewBadSignature returns a signature that will return error when appropriate.
func NewBadSignature() Signature {
	return Signature{err: fakeErr}
}

// Equal implements crypto.Signature.
func (s Signature) Equal(o crypto.Signature) bool {
	other, ok := o.(Signature)
	return ok && bytes.Equal(s.data, other.data)
}

// MarshalBinary implements crypto.Signature.
func (s Signature) MarshalBinary() ([]byte, error) {
	if s.data != nil {
		return s.data, s.err
	}

	return []byte{SignatureByte}, s.err
}

// PublicKey is a fake implementation of crypto.PublicKey.
//
// - implements crypto.PublicKey
type PublicKey struct {
	data []byte
	err  error
}

// NewPublicKey returns a fake public key that marshals to the data.
func NewPublicKey(data []byte) PublicKey {
	return PublicKey{data: data}
}

// NewBadPublicKey returns a new fake public key that returns error when
// appropriate.
func NewBadPublicKey() PublicKey {
	return PublicKey{err: fakeErr}
}

// Verify implements crypto.PublicKey.
func (pk PublicKey) Verify([]byte, crypto.Signature) error {
	return pk.err
}

// Equal implements crypto.PublicKey.
func (pk PublicKey) Equal(other interface{}) bool {
	o, ok := other.(PublicKey)
	return ok && bytes.Equal(o.data, pk.data)
}

// MarshalBinary implements crypto.PublicKey.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	if pk.err != nil {
		return nil, pk.err
	}

	if pk.data != nil {
		return pk.data, nil
	}

	return []byte("PK"), nil
}

// MarshalText implements crypto.PublicKey.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return pk.MarshalBinary()
}

// Signer is a fake implementation of the crypto.Signer interface. The
// signature it produces is the key followed by the message so that tests can
// check which key signed what.
//
// - implements crypto.Signer
type Signer struct {
	key    []byte
	err    error
	pubErr error
	calls  *Call
}

// NewSigner returns a new instance of the fake signer with the key.
func NewSigner(key []byte) Signer {
	return Signer{key: key}
}

// NewSignerWithCalls returns a fake signer that records each message it signs.
func NewSignerWithCalls(key []byte, calls *Call) Signer {
	return Signer{key: key, calls: calls}
}

// NewBadSigner returns a fake signer that will return an error when
// appropriate.
func NewBadSigner() Signer {
	return Signer{key: []byte("bad"), err: fakeErr}
}

// NewSignerWithBadPublicKey returns a fake signer whose public key cannot be
// marshaled.
func NewSignerWithBadPublicKey() Signer {
	return Signer{pubErr: fakeErr}
}

// GetPublicKey implements crypto.Signer.
func (s Signer) GetPublicKey() crypto.PublicKey {
	return PublicKey{data: s.key, err: s.pubErr}
}

// Sign implements crypto.Signer.
func (s Signer) Sign(msg []byte) (crypto.Signature, error) {
	s.calls.Add(msg)

	if s.err != nil {
		return nil, s.err
	}

	data := append(append([]byte{}, s.key...), msg...)

	return Signature{data: data}, nil
}

// Hash is a fake implementation of the hash.Hash interface.
//
// - implements hash.Hash
type Hash struct {
	hash.Hash
	delay int
	err   error
	sum   []byte
}

// NewBadHash returns a fake hash that returns an error when appropriate.
func NewBadHash() *Hash {
	return &Hash{err: fakeErr}
}

// NewBadHashWithDelay returns a fake hash that returns an error after a
// certain amount of calls.
func NewBadHashWithDelay(delay int) *Hash {
	return &Hash{err: fakeErr, delay: delay}
}

// NewHashWithSum returns a fake hash that always returns the sum.
func NewHashWithSum(sum []byte) *Hash {
	return &Hash{sum: sum}
}

// Write implements hash.Hash.
func (h *Hash) Write(data []byte) (int, error) {
	if h.delay > 0 {
		h.delay--
		return len(data), nil
	}

	if h.err != nil {
		return 0, h.err
	}

	return len(data), nil
}

// Size implements hash.Hash.
func (h *Hash) Size() int {
	return len(h.sum)
}

// Reset implements hash.Hash.
func (h *Hash) Reset() {}

// Sum implements hash.Hash.
func (h *Hash) Sum([]byte) []byte {
	return h.sum
}

// HashFactory is a fake implementation of a hash factory.
//
// - implements crypto.HashFactory
type HashFactory struct {
	hash *Hash
}

// NewHashFactory returns a fake hash factory.
func NewHashFactory(h *Hash) HashFactory {
	return HashFactory{hash: h}
}

// New implements crypto.HashFactory.
func (f HashFactory) New() hash.Hash {
	return f.hash
}

// Clock returns a clock function that always returns the time at the given
// milliseconds since the epoch.
func Clock(ms int64) func() time.Time {
	return func() time.Time {
		return time.UnixMilli(ms)
	}
}
