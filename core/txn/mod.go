// Package txn defines the transactions of the ledger.
//
// A transaction is a type-tagged record made of common fields (version,
// sender, fee, timestamp) and a kind-specific body. It is uniquely
// identifiable via the digest of its canonical bytes which do not include the
// proofs, so that the identifier stays the same whatever the number of
// signatures attached to it.
//
// Proofs are positional: the slot 0 is conventionally the signature of the
// sender, and higher slots are used by multisig account scripts where each
// co-signer occupies a pre-agreed position.
package txn

import (
	"bytes"
	"io"

	"github.com/ltonetwork/lto/serde"
	"github.com/ltonetwork/lto/serde/registry"
	"golang.org/x/xerrors"
)

var txFormats = registry.NewSimpleRegistry()

// RegisterTransactionFormat registers the engine for the provided format.
func RegisterTransactionFormat(f serde.Format, e serde.FormatEngine) {
	txFormats.Register(f, e)
}

// Type is the numeric code of a transaction kind.
type Type byte

const (
	// TypeIssue creates a new asset.
	TypeIssue Type = 3
	// TypeTransfer sends an amount to a recipient.
	TypeTransfer Type = 4
	// TypeReissue increases the supply of an asset.
	TypeReissue Type = 5
	// TypeBurn destroys an amount of an asset.
	TypeBurn Type = 6
	// TypeExchange settles two matched orders.
	TypeExchange Type = 7
	// TypeAlias creates an alias for the sender address.
	TypeAlias Type = 10
	// TypeMassTransfer sends amounts to several recipients.
	TypeMassTransfer Type = 11
	// TypeSetScript sets or removes the script of the sender account.
	TypeSetScript Type = 13

	// TypeOrder is the internal tag of matcher orders. It is never written
	// on the wire.
	TypeOrder Type = 252
	// TypeCancelOrder is the internal tag of matcher order cancellations. It
	// is never written on the wire.
	TypeCancelOrder Type = 253
)

// DefaultChainID is the chain identifier used when a body does not specify
// one.
const DefaultChainID byte = 'L'

// Body is the kind-specific payload of a transaction.
type Body interface {
	// Type returns the type of the transaction the body belongs to.
	Type() Type

	// Clone returns a deep copy of the body.
	Clone() Body

	body()
}

// Transaction is the record handed to the network once assembled and signed.
//
// - implements serde.Message
// - implements serde.Fingerprinter
type Transaction struct {
	Type            Type
	Version         byte
	SenderPublicKey []byte
	Fee             uint64
	// Timestamp is the creation time in milliseconds since the epoch.
	Timestamp int64
	// ID is the base58 text of the identifier, empty until the transaction
	// is finalized.
	ID     string
	Proofs Proofs
	Body   Body
}

// GetKind returns the kind definition of the transaction.
func (t *Transaction) GetKind() (Kind, error) {
	kind, found := KindOf(t.Type)
	if !found {
		return Kind{}, xerrors.Errorf("unknown transaction type %d", t.Type)
	}

	return kind, nil
}

// Clone returns a deep copy of the transaction.
func (t *Transaction) Clone() *Transaction {
	clone := *t
	clone.SenderPublicKey = append([]byte(nil), t.SenderPublicKey...)
	clone.Proofs = t.Proofs.Clone()

	if t.Body != nil {
		clone.Body = t.Body.Clone()
	}

	return &clone
}

// Fingerprint implements serde.Fingerprinter. It writes the canonical bytes of
// the transaction, which depend on every field except the proofs and the
// identifier.
func (t *Transaction) Fingerprint(w io.Writer) error {
	kind, err := t.GetKind()
	if err != nil {
		return err
	}

	if t.Body == nil || t.Body.Type() != t.Type {
		return xerrors.Errorf("body does not match transaction type %d", t.Type)
	}

	enc := newEncoder(w)
	kind.fingerprint(enc, t)

	if enc.err != nil {
		return xerrors.Errorf("couldn't fingerprint %s: %v", kind.Name, enc.err)
	}

	return nil
}

// Bytes returns the canonical bytes of the transaction.
func (t *Transaction) Bytes() ([]byte, error) {
	buffer := new(bytes.Buffer)

	err := t.Fingerprint(buffer)
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Serialize implements serde.Message. It returns the serialized data of the
// transaction.
func (t *Transaction) Serialize(ctx serde.Context) ([]byte, error) {
	format := txFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, t)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode: %v", err)
	}

	return data, nil
}

// TransactionFactory is a factory to deserialize transactions.
//
// - implements serde.Factory
type TransactionFactory struct{}

// NewTransactionFactory returns a new factory.
func NewTransactionFactory() TransactionFactory {
	return TransactionFactory{}
}

// Deserialize implements serde.Factory. It populates the transaction from the
// data if appropriate, otherwise it returns an error.
func (f TransactionFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	return f.TransactionOf(ctx, data)
}

// TransactionOf populates the transaction from the data if appropriate,
// otherwise it returns an error.
func (f TransactionFactory) TransactionOf(ctx serde.Context, data []byte) (*Transaction, error) {
	format := txFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode: %v", err)
	}

	tx, ok := msg.(*Transaction)
	if !ok {
		return nil, xerrors.Errorf("invalid transaction of type '%T'", msg)
	}

	return tx, nil
}
