package builder

import (
	"github.com/ltonetwork/lto/core/txn"
)

// Header is the common fields a caller can set. Zero values are replaced by
// the defaults of the kind.
type Header struct {
	Version byte
	// Fee is the total fee. Zero means the fee is computed from the base fee
	// of the kind and the additional fee.
	Fee           uint64
	AdditionalFee uint64
	// Timestamp is in milliseconds since the epoch. Zero means now.
	Timestamp int64
}

// Input is the description of the transaction to build.
type Input interface {
	header() Header
	body() txn.Body
}

// Fresh is the input of a new transaction. The sender is the first signer.
//
// - implements builder.Input
type Fresh struct {
	Header
	Body txn.Body
}

func (in Fresh) header() Header {
	return in.Header
}

func (in Fresh) body() txn.Body {
	return in.Body
}

// Completion is the input of a transaction that is created or signed by
// another party, such as a multisig transaction collecting the proofs of
// each co-signer.
//
// - implements builder.Input
type Completion struct {
	Header
	// SenderPublicKey is the sender of the transaction. The first signer is
	// the sender when it is empty.
	SenderPublicKey []byte
	Body            txn.Body
	// Proofs are the proofs already collected. They are copied.
	Proofs txn.Proofs
	// ID is the identifier the transaction is expected to have when it is
	// not empty.
	ID string
}

func (in Completion) header() Header {
	return in.Header
}

func (in Completion) body() txn.Body {
	return in.Body
}

// Complete returns the input to add proofs to the transaction. The result of
// the build keeps the identifier of the transaction.
func Complete(tx *txn.Transaction) Completion {
	return Completion{
		Header: Header{
			Version:   tx.Version,
			Fee:       tx.Fee,
			Timestamp: tx.Timestamp,
		},
		SenderPublicKey: tx.SenderPublicKey,
		Body:            tx.Body,
		Proofs:          tx.Proofs,
		ID:              tx.ID,
	}
}
