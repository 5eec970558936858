package builder

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrMissingSenderIdentity is returned when the sender of a transaction can
// neither be read from the input nor derived from a signer.
var ErrMissingSenderIdentity = xerrors.New("missing sender identity")

// ErrIdentityMismatch is returned when a completed transaction does not have
// the identifier it was created with, which means its content changed.
var ErrIdentityMismatch = xerrors.New("transaction identity mismatch")

// SerializationError is returned when the canonical bytes of a transaction
// cannot be produced.
type SerializationError struct {
	Err error
}

// Error implements error.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("couldn't serialize transaction: %v", e.Err)
}

// Unwrap returns the error of the serializer.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// SigningError is returned when a signer fails to produce the proof of its
// slot.
type SigningError struct {
	Index int
	Err   error
}

// Error implements error.
func (e *SigningError) Error() string {
	return fmt.Sprintf("couldn't sign proof %d: %v", e.Index, e.Err)
}

// Unwrap returns the error of the signer.
func (e *SigningError) Unwrap() error {
	return e.Err
}
