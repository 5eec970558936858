// Package json implements the JSON format of the transactions as accepted by
// the node and the matcher APIs.
package json

import (
	"encoding/json"

	"github.com/ltonetwork/lto/core/txn"
	"github.com/ltonetwork/lto/serde"
	"golang.org/x/xerrors"
)

func init() {
	txn.RegisterTransactionFormat(serde.FormatJSON, txFormat{})
}

// TransactionJSON is the JSON message of the common fields of a transaction.
// The fields of the body are merged at the same level.
type TransactionJSON struct {
	Type            *txn.Type   `json:"type,omitempty"`
	Version         byte        `json:"version"`
	ID              string      `json:"id,omitempty"`
	SenderPublicKey txn.Base58  `json:"senderPublicKey"`
	Fee             *uint64     `json:"fee,omitempty"`
	MatcherFee      *uint64     `json:"matcherFee,omitempty"`
	Timestamp       int64       `json:"timestamp"`
	Proofs          []txn.Proof `json:"proofs"`
}

// ExchangeJSON is the JSON message of the body of an exchange.
type ExchangeJSON struct {
	Order1         json.RawMessage `json:"order1"`
	Order2         json.RawMessage `json:"order2"`
	Price          uint64          `json:"price"`
	Amount         uint64          `json:"amount"`
	BuyMatcherFee  uint64          `json:"buyMatcherFee"`
	SellMatcherFee uint64          `json:"sellMatcherFee"`
}

// TxFormat is the JSON format engine for transactions.
//
// - implements serde.FormatEngine
type txFormat struct{}

// Encode implements serde.FormatEngine. It returns the JSON data of the
// provided transaction if appropriate, otherwise it returns an error.
func (f txFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	tx, ok := msg.(*txn.Transaction)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	fields, err := f.encodeFields(ctx, tx)
	if err != nil {
		return nil, err
	}

	data, err := ctx.Marshal(fields)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

func (f txFormat) encodeFields(ctx serde.Context, tx *txn.Transaction) (map[string]json.RawMessage, error) {
	kind, err := tx.GetKind()
	if err != nil {
		return nil, err
	}

	if tx.Body == nil || tx.Body.Type() != tx.Type {
		return nil, xerrors.Errorf("body does not match transaction type %d", tx.Type)
	}

	m := TransactionJSON{
		Version:         tx.Version,
		ID:              tx.ID,
		SenderPublicKey: tx.SenderPublicKey,
		Timestamp:       tx.Timestamp,
		Proofs:          tx.Proofs,
	}

	if m.Proofs == nil {
		m.Proofs = []txn.Proof{}
	}

	fee := tx.Fee

	switch {
	case kind.Broadcast:
		m.Type = &kind.Type
		m.Fee = &fee
	case tx.Type == txn.TypeOrder:
		m.MatcherFee = &fee
	}

	fields := map[string]json.RawMessage{}

	err = merge(ctx, fields, m)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode header: %v", err)
	}

	var body interface{} = tx.Body

	switch b := tx.Body.(type) {
	case txn.Exchange:
		body, err = f.encodeExchange(ctx, b)
		if err != nil {
			return nil, err
		}
	case txn.SetScript:
		if b.Script == nil {
			body = struct {
				ChainID byte        `json:"chainId"`
				Script  interface{} `json:"script"`
			}{ChainID: b.ChainID}
		}
	}

	err = merge(ctx, fields, body)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode %s: %v", kind.Name, err)
	}

	return fields, nil
}

func (f txFormat) encodeExchange(ctx serde.Context, body txn.Exchange) (ExchangeJSON, error) {
	m := ExchangeJSON{
		Price:          body.Price,
		Amount:         body.Amount,
		BuyMatcherFee:  body.BuyMatcherFee,
		SellMatcherFee: body.SellMatcherFee,
	}

	if body.Order1 == nil || body.Order2 == nil {
		return m, xerrors.New("exchange is missing an order")
	}

	var err error

	m.Order1, err = f.Encode(ctx, body.Order1)
	if err != nil {
		return m, xerrors.Errorf("failed to encode order 1: %v", err)
	}

	m.Order2, err = f.Encode(ctx, body.Order2)
	if err != nil {
		return m, xerrors.Errorf("failed to encode order 2: %v", err)
	}

	return m, nil
}

// Decode implements serde.FormatEngine. It returns the transaction from the
// JSON data if appropriate, otherwise it returns an error. The matcher
// messages are recognized by their fields as they carry no type.
func (f txFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	fields := map[string]json.RawMessage{}

	err := ctx.Unmarshal(data, &fields)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	m := TransactionJSON{}

	err = ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal header: %v", err)
	}

	typ, err := typeOf(m, fields)
	if err != nil {
		return nil, err
	}

	kind, found := txn.KindOf(typ)
	if !found {
		return nil, xerrors.Errorf("unknown transaction type %d", typ)
	}

	tx := &txn.Transaction{
		Type:            typ,
		Version:         m.Version,
		SenderPublicKey: m.SenderPublicKey,
		Timestamp:       m.Timestamp,
		ID:              m.ID,
		Proofs:          m.Proofs,
	}

	switch {
	case m.Fee != nil:
		tx.Fee = *m.Fee
	case m.MatcherFee != nil:
		tx.Fee = *m.MatcherFee
	}

	if typ == txn.TypeExchange {
		tx.Body, err = f.decodeExchange(ctx, data)
	} else {
		tx.Body, err = decodeBody(ctx, kind, data)
	}

	if err != nil {
		return nil, xerrors.Errorf("failed to decode %s: %v", kind.Name, err)
	}

	return tx, nil
}

func (f txFormat) decodeExchange(ctx serde.Context, data []byte) (txn.Body, error) {
	m := ExchangeJSON{}

	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	body := txn.Exchange{
		Price:          m.Price,
		Amount:         m.Amount,
		BuyMatcherFee:  m.BuyMatcherFee,
		SellMatcherFee: m.SellMatcherFee,
	}

	body.Order1, err = f.decodeOrder(ctx, m.Order1)
	if err != nil {
		return nil, xerrors.Errorf("order 1: %v", err)
	}

	body.Order2, err = f.decodeOrder(ctx, m.Order2)
	if err != nil {
		return nil, xerrors.Errorf("order 2: %v", err)
	}

	return body, nil
}

func (f txFormat) decodeOrder(ctx serde.Context, data []byte) (*txn.Transaction, error) {
	if len(data) == 0 {
		return nil, xerrors.New("missing")
	}

	msg, err := f.Decode(ctx, data)
	if err != nil {
		return nil, err
	}

	order := msg.(*txn.Transaction)
	if order.Type != txn.TypeOrder {
		return nil, xerrors.Errorf("invalid order type %d", order.Type)
	}

	return order, nil
}

func decodeBody(ctx serde.Context, kind txn.Kind, data []byte) (txn.Body, error) {
	ptr := kind.New()

	err := ctx.Unmarshal(data, ptr)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	body, ok := ptr.(txn.Body)
	if !ok {
		return nil, xerrors.Errorf("invalid body of type '%T'", ptr)
	}

	// The clone is the value form of the body, as stored in transactions.
	return body.Clone(), nil
}

func typeOf(m TransactionJSON, fields map[string]json.RawMessage) (txn.Type, error) {
	if m.Type != nil {
		return *m.Type, nil
	}

	if _, found := fields["orderType"]; found {
		return txn.TypeOrder, nil
	}

	if _, found := fields["orderId"]; found {
		return txn.TypeCancelOrder, nil
	}

	return 0, xerrors.New("missing transaction type")
}

// merge adds the fields of the JSON object of the value into the map.
func merge(ctx serde.Context, fields map[string]json.RawMessage, value interface{}) error {
	data, err := ctx.Marshal(value)
	if err != nil {
		return xerrors.Errorf("failed to marshal: %v", err)
	}

	object := map[string]json.RawMessage{}

	err = ctx.Unmarshal(data, &object)
	if err != nil {
		return xerrors.Errorf("failed to unmarshal: %v", err)
	}

	for key, value := range object {
		fields[key] = value
	}

	return nil
}
