package txn

import (
	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/xerrors"
)

// Proof is the signature bytes stored at a slot of the proofs of a
// transaction. A zero-length proof is the placeholder of a slot that has not
// been signed yet.
type Proof []byte

// IsEmpty returns true if the proof is a placeholder.
func (p Proof) IsEmpty() bool {
	return len(p) == 0
}

// MarshalText implements encoding.TextMarshaler. It returns the base58 text
// of the proof, or an empty string for a placeholder.
func (p Proof) MarshalText() ([]byte, error) {
	return []byte(base58.Encode(p)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Proof) UnmarshalText(text []byte) error {
	data, err := decodeBase58(text)
	if err != nil {
		return xerrors.Errorf("invalid proof: %v", err)
	}

	*p = data

	return nil
}

// Proofs is the ordered collection of proofs of a transaction. It never has
// gaps: unsigned slots hold an empty proof.
type Proofs []Proof

// Set returns the proofs with the slot at the index set to the proof. The
// collection grows when necessary and the new intermediate slots are filled
// with empty placeholders. Setting a slot twice replaces the previous value.
func (p Proofs) Set(index int, proof Proof) Proofs {
	if index < 0 {
		panic("negative proof index")
	}

	for len(p) <= index {
		p = append(p, Proof{})
	}

	p[index] = proof

	return p
}

// Len returns the number of slots.
func (p Proofs) Len() int {
	return len(p)
}

// Clone returns a deep copy of the proofs.
func (p Proofs) Clone() Proofs {
	if p == nil {
		return nil
	}

	clone := make(Proofs, len(p))
	for i, proof := range p {
		clone[i] = append(Proof{}, proof...)
	}

	return clone
}

// AddProof stores the signature at the slot index of the proofs of the
// transaction, padding with empty placeholders when the slot does not exist
// yet.
func (t *Transaction) AddProof(signature []byte, index int) {
	t.Proofs = t.Proofs.Set(index, Proof(signature))
}
