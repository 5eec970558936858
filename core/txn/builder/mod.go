// Package builder assembles transactions and attaches the proofs of their
// signers.
//
// A build resolves the signing keys, the sender and the fee, then writes the
// canonical bytes of the transaction once. Every signer signs the same bytes
// and its signature is stored at its slot of the proofs. The identifier is
// the digest of the canonical bytes, so that a transaction completed by
// several parties in turn keeps the same identifier.
package builder

import (
	"bytes"
	"time"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ltonetwork/lto"
	"github.com/ltonetwork/lto/core/txn"
	"github.com/ltonetwork/lto/core/txn/signing"
	"github.com/ltonetwork/lto/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

var (
	promAssembled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lto_txn_assembled_total",
		Help: "total number of transactions assembled per kind",
	}, []string{"kind"})

	promProofs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lto_txn_proofs_total",
		Help: "total number of proofs attached to transactions",
	})
)

func init() {
	lto.PromCollectors = append(lto.PromCollectors, promAssembled, promProofs)
}

// Serializer produces the bytes that are signed and hashed.
type Serializer interface {
	Serialize(tx *txn.Transaction) ([]byte, error)
}

// FingerprintSerializer is the serializer of the canonical bytes of the
// transactions.
//
// - implements builder.Serializer
type FingerprintSerializer struct{}

// Serialize implements builder.Serializer.
func (FingerprintSerializer) Serialize(tx *txn.Transaction) ([]byte, error) {
	buffer := new(bytes.Buffer)

	err := tx.Fingerprint(buffer)
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Builder assembles and signs transactions. It only holds its configuration
// and can be used concurrently.
type Builder struct {
	clock       func() time.Time
	hashFactory crypto.HashFactory
	serializer  Serializer
	logger      zerolog.Logger
}

// Option is the type of options to create a builder.
type Option func(*Builder)

// WithClock is an option to set the clock used for the default timestamp.
func WithClock(clock func() time.Time) Option {
	return func(b *Builder) {
		b.clock = clock
	}
}

// WithHashFactory is an option to set the hash of the identifiers.
func WithHashFactory(f crypto.HashFactory) Option {
	return func(b *Builder) {
		b.hashFactory = f
	}
}

// WithSerializer is an option to set the serializer of the bytes to sign.
func WithSerializer(s Serializer) Option {
	return func(b *Builder) {
		b.serializer = s
	}
}

// WithLogger is an option to set the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

// NewBuilder returns a builder with the options applied. By default, the
// identifiers are BLAKE2b-256 digests of the canonical bytes.
func NewBuilder(opts ...Option) Builder {
	b := Builder{
		clock:       time.Now,
		hashFactory: crypto.NewHashFactory(crypto.Blake2b256),
		serializer:  FingerprintSerializer{},
		logger:      lto.Logger,
	}

	for _, opt := range opts {
		opt(&b)
	}

	return b
}

// Build returns the transaction of the input signed by the signers of the
// specification. The input is never modified.
func (b Builder) Build(in Input, spec signing.Spec) (*txn.Transaction, error) {
	if in == nil || in.body() == nil {
		return nil, xerrors.New("missing transaction body")
	}

	pairs, err := signing.Resolve(spec)
	if err != nil {
		return nil, err
	}

	sender, err := SenderOf(pairs, in)
	if err != nil {
		return nil, err
	}

	tx, kind, err := b.assemble(in, sender)
	if err != nil {
		return nil, err
	}

	data, err := b.serializer.Serialize(tx)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	for _, pair := range pairs {
		proof, err := sign(pair, data)
		if err != nil {
			return nil, err
		}

		tx.AddProof(proof, pair.Index)
	}

	h := b.hashFactory.New()

	_, err = h.Write(data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't hash transaction: %v", err)
	}

	tx.ID = base58.Encode(h.Sum(nil))

	completion, ok := in.(Completion)
	if ok && completion.ID != "" && completion.ID != tx.ID {
		return nil, xerrors.Errorf("expected %s but got %s: %w",
			completion.ID, tx.ID, ErrIdentityMismatch)
	}

	b.logger.Debug().
		Stringer("call", xid.New()).
		Str("kind", kind.Name).
		Str("id", tx.ID).
		Int("signers", len(pairs)).
		Int("proofs", tx.Proofs.Len()).
		Msg("transaction assembled")

	promAssembled.WithLabelValues(kind.Name).Inc()
	promProofs.Add(float64(len(pairs)))

	return tx, nil
}

func (b Builder) assemble(in Input, sender []byte) (*txn.Transaction, txn.Kind, error) {
	header := in.header()
	body := in.body()

	kind, found := txn.KindOf(body.Type())
	if !found {
		return nil, kind, xerrors.Errorf("unknown transaction type %d", body.Type())
	}

	tx := &txn.Transaction{
		Type:            kind.Type,
		Version:         header.Version,
		SenderPublicKey: sender,
		Timestamp:       header.Timestamp,
		Proofs:          txn.Proofs{},
	}

	if tx.Version == 0 {
		tx.Version = kind.Version
	}

	if tx.Timestamp == 0 {
		tx.Timestamp = b.clock().UnixMilli()
	}

	tx.Body = kind.Defaults(body, tx)
	tx.Fee = Fee(header, kind.BaseFee(tx.Body))

	completion, ok := in.(Completion)
	if ok && completion.Proofs != nil {
		tx.Proofs = completion.Proofs.Clone()
	}

	return tx, kind, nil
}

func sign(pair signing.Pair, data []byte) (txn.Proof, error) {
	sig, err := pair.Signer.Sign(data)
	if err != nil {
		return nil, &SigningError{Index: pair.Index, Err: err}
	}

	proof, err := sig.MarshalBinary()
	if err != nil {
		return nil, &SigningError{Index: pair.Index, Err: err}
	}

	return proof, nil
}
