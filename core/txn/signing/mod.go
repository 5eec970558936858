// Package signing normalizes the signing keys given to the transaction
// builder into an ordered list of (signer, proof slot) pairs.
//
// The keys come in three shapes. A single signer signs the slot 0. A sequence
// of signers signs the slot of its position, where a nil entry leaves the slot
// to another party. Explicit pairs give the slot of each signer.
package signing

import (
	"reflect"

	"github.com/ltonetwork/lto/crypto"
	"golang.org/x/xerrors"
)

// ErrInvalidSigningKeySpec is returned when the signing keys cannot be
// resolved into pairs.
var ErrInvalidSigningKeySpec = xerrors.New("invalid signing key specification")

// Pair is a signer with the slot of the proofs it signs.
type Pair struct {
	Signer crypto.Signer
	Index  int
}

// Spec is the description of the signing keys of a transaction.
type Spec interface {
	spec()
}

// Single is a signer for the slot 0.
//
// - implements signing.Spec
type Single struct {
	Signer crypto.Signer
}

func (Single) spec() {}

// Sequence is a list of signers, each one signing the slot of its position. A
// nil entry is an absent signer.
//
// - implements signing.Spec
type Sequence []crypto.Signer

func (Sequence) spec() {}

// Explicit is a list of pairs that is used as is.
//
// - implements signing.Spec
type Explicit []Pair

func (Explicit) spec() {}

// Resolve returns the pairs of the specification in signing order. A nil
// specification resolves to no pair.
func Resolve(spec Spec) ([]Pair, error) {
	switch s := spec.(type) {
	case nil:
		return []Pair{}, nil
	case Single:
		if isNil(s.Signer) {
			return nil, xerrors.Errorf("missing signer: %w", ErrInvalidSigningKeySpec)
		}

		return []Pair{{Signer: s.Signer, Index: 0}}, nil
	case Sequence:
		pairs := make([]Pair, 0, len(s))
		for i, signer := range s {
			if signer == nil {
				continue
			}

			if isNil(signer) {
				return nil, xerrors.Errorf("nil signer at slot %d: %w",
					i, ErrInvalidSigningKeySpec)
			}

			pairs = append(pairs, Pair{Signer: signer, Index: i})
		}

		return pairs, nil
	case Explicit:
		for i, pair := range s {
			if isNil(pair.Signer) {
				return nil, xerrors.Errorf("missing signer at pair %d: %w",
					i, ErrInvalidSigningKeySpec)
			}

			if pair.Index < 0 {
				return nil, xerrors.Errorf("negative index %d at pair %d: %w",
					pair.Index, i, ErrInvalidSigningKeySpec)
			}
		}

		return append([]Pair{}, s...), nil
	default:
		return nil, xerrors.Errorf("unsupported type '%T': %w", spec, ErrInvalidSigningKeySpec)
	}
}

// isNil returns true for a nil signer, including a nil pointer behind the
// interface.
func isNil(signer crypto.Signer) bool {
	if signer == nil {
		return true
	}

	value := reflect.ValueOf(signer)
	switch value.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return value.IsNil()
	default:
		return false
	}
}
