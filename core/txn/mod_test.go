package txn

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ltonetwork/lto/crypto"
	"github.com/ltonetwork/lto/serde"
	"github.com/ltonetwork/lto/testing/fake"
	"github.com/stretchr/testify/require"
)

func init() {
	RegisterTransactionFormat(fake.GoodFormat, fake.Format{Msg: &Transaction{}})
	RegisterTransactionFormat(fake.BadFormat, fake.NewBadFormat())
	RegisterTransactionFormat(serde.Format("BAD_TYPE"), fake.Format{Msg: fake.Message{}})
}

var (
	testKey       = bytes.Repeat([]byte{0xaa}, PublicKeySize)
	testRecipient = crypto.NewAddress(bytes.Repeat([]byte{0xbb}, PublicKeySize), 'L').String()
)

func TestTransaction_GetKind(t *testing.T) {
	tx := makeTransfer()

	kind, err := tx.GetKind()
	require.NoError(t, err)
	require.Equal(t, "transfer", kind.Name)

	tx.Type = 99
	_, err = tx.GetKind()
	require.EqualError(t, err, "unknown transaction type 99")
}

func TestTransaction_Clone(t *testing.T) {
	tx := makeTransfer()
	tx.Proofs = Proofs{{1, 2}}

	clone := tx.Clone()
	require.Equal(t, tx, clone)

	clone.SenderPublicKey[0] = 0
	clone.Proofs[0][0] = 0
	clone.Body.(Transfer).Attachment[0] = 0

	require.Equal(t, byte(0xaa), tx.SenderPublicKey[0])
	require.Equal(t, byte(1), tx.Proofs[0][0])
	require.Equal(t, byte(0xcc), tx.Body.(Transfer).Attachment[0])
}

func TestTransaction_Fingerprint(t *testing.T) {
	tx := makeTransfer()

	buffer := new(bytes.Buffer)
	err := tx.Fingerprint(buffer)
	require.NoError(t, err)
	// type, version, key, asset flag, timestamp, amount, fee, recipient,
	// attachment
	require.Equal(t, 1+1+32+1+8+8+8+26+2+1, buffer.Len())
	require.Equal(t, []byte{byte(TypeTransfer), 2}, buffer.Bytes()[:2])

	err = tx.Fingerprint(fake.NewBadHash())
	require.EqualError(t, err, fake.Err("couldn't fingerprint transfer: couldn't write type"))

	tx.SenderPublicKey = []byte{1, 2, 3}
	err = tx.Fingerprint(buffer)
	require.EqualError(t, err,
		"couldn't fingerprint transfer: invalid sender public key length 3, expected 32")

	tx = makeTransfer()
	tx.Body = Transfer{Recipient: ""}
	err = tx.Fingerprint(buffer)
	require.EqualError(t, err,
		"couldn't fingerprint transfer: invalid recipient: invalid address length 0")

	tx.Body = Burn{}
	err = tx.Fingerprint(buffer)
	require.EqualError(t, err, "body does not match transaction type 4")

	tx.Body = nil
	err = tx.Fingerprint(buffer)
	require.EqualError(t, err, "body does not match transaction type 4")

	tx.Type = 99
	err = tx.Fingerprint(buffer)
	require.EqualError(t, err, "unknown transaction type 99")
}

func TestTransaction_Bytes_IgnoreProofsAndID(t *testing.T) {
	tx := makeTransfer()

	data, err := tx.Bytes()
	require.NoError(t, err)

	tx.Proofs = Proofs{{1}, {}, {2, 3}}
	tx.ID = "abc"

	other, err := tx.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, other)

	tx.Fee++

	other, err = tx.Bytes()
	require.NoError(t, err)
	require.NotEqual(t, data, other)
}

func TestTransaction_Bytes_Kinds(t *testing.T) {
	order := &Transaction{
		Type:            TypeOrder,
		Version:         2,
		SenderPublicKey: testKey,
		Fee:             300000,
		Timestamp:       1000,
		Proofs:          Proofs{{1, 2, 3}},
		Body: Order{
			MatcherPublicKey: testKey,
			AssetPair:        AssetPair{AmountAsset: bytes.Repeat([]byte{1}, AssetIDSize)},
			OrderType:        OrderBuy,
			Price:            10,
			Amount:           20,
			Expiration:       2000,
		},
	}

	bodies := []Body{
		Issue{ChainID: 'L', Name: "token", Quantity: 10, Script: Script{1}},
		Reissue{ChainID: 'L', AssetID: bytes.Repeat([]byte{1}, AssetIDSize)},
		Burn{ChainID: 'L', AssetID: bytes.Repeat([]byte{1}, AssetIDSize)},
		MassTransfer{Transfers: []TransferEntry{
			{Recipient: testRecipient, Amount: 1},
			{Recipient: "alias:L:bob", Amount: 2},
		}},
		Alias{ChainID: 'L', Alias: "bob"},
		SetScript{ChainID: 'L'},
		CancelOrder{OrderID: bytes.Repeat([]byte{2}, AssetIDSize)},
		Exchange{Order1: order, Order2: order, Price: 10, Amount: 20},
		order.Body,
	}

	for _, body := range bodies {
		tx := &Transaction{
			Type:            body.Type(),
			Version:         1,
			SenderPublicKey: testKey,
			Body:            body,
		}

		data, err := tx.Bytes()
		require.NoError(t, err, body.Type())
		require.NotEmpty(t, data)

		tx.Timestamp = 1
		other, err := tx.Bytes()
		require.NoError(t, err)

		if body.Type() == TypeCancelOrder {
			require.Equal(t, data, other)
		} else {
			require.NotEqual(t, data, other, body.Type())
		}
	}
}

func TestTransaction_Bytes_Oversized(t *testing.T) {
	transfers := make([]TransferEntry, 65536)
	for i := range transfers {
		transfers[i] = TransferEntry{Recipient: testRecipient, Amount: 1}
	}

	order := &Transaction{
		Type:            TypeOrder,
		Version:         2,
		SenderPublicKey: testKey,
		Proofs:          make(Proofs, 65536),
		Body:            Order{MatcherPublicKey: testKey, OrderType: OrderBuy},
	}

	cases := []struct {
		body Body
		err  string
	}{
		{
			body: MassTransfer{Transfers: transfers},
			err:  "couldn't fingerprint mass-transfer: transfers is too long: 65536",
		},
		{
			body: Alias{ChainID: 'L', Alias: strings.Repeat("a", 65532)},
			err:  "couldn't fingerprint alias: alias is too long: 65536",
		},
		{
			body: Transfer{Recipient: "alias:L:" + strings.Repeat("a", 65536)},
			err:  "couldn't fingerprint transfer: recipient is too long: 65536 bytes",
		},
		{
			body: Exchange{Order1: order, Order2: order},
			err:  "couldn't fingerprint exchange: order 1 is too long: 65536",
		},
	}

	for _, c := range cases {
		tx := &Transaction{
			Type:            c.body.Type(),
			Version:         2,
			SenderPublicKey: testKey,
			Body:            c.body,
		}

		_, err := tx.Bytes()
		require.EqualError(t, err, c.err)
	}

	tx := &Transaction{
		Type:            TypeMassTransfer,
		Version:         1,
		SenderPublicKey: testKey,
		Body:            MassTransfer{Transfers: transfers[:65535]},
	}

	_, err := tx.Bytes()
	require.NoError(t, err)
}

func TestTransaction_Bytes_ExchangeIncludesOrderProofs(t *testing.T) {
	order := &Transaction{
		Type:            TypeOrder,
		Version:         2,
		SenderPublicKey: testKey,
		Body: Order{
			MatcherPublicKey: testKey,
			OrderType:        OrderSell,
		},
	}

	tx := &Transaction{
		Type:    TypeExchange,
		Version: 2,
		Body:    Exchange{Order1: order, Order2: order},
	}

	data, err := tx.Bytes()
	require.NoError(t, err)

	order.Proofs = Proofs{{1}}

	other, err := tx.Bytes()
	require.NoError(t, err)
	require.NotEqual(t, data, other)

	tx.Body = Exchange{Order1: order}
	_, err = tx.Bytes()
	require.EqualError(t, err, "couldn't fingerprint exchange: missing order 2")

	order.Body = Order{MatcherPublicKey: testKey, OrderType: "both"}
	tx.Body = Exchange{Order1: order, Order2: order}
	_, err = tx.Bytes()
	require.EqualError(t, err, "couldn't fingerprint exchange: invalid order 1: "+
		"couldn't fingerprint order: invalid order type 'both'")
}

func TestTransaction_Bytes_Alias(t *testing.T) {
	tx := &Transaction{
		Type:            TypeTransfer,
		Version:         2,
		SenderPublicKey: testKey,
		Body:            Transfer{Recipient: "alias:L:bob"},
	}

	data, err := tx.Bytes()
	require.NoError(t, err)
	require.Contains(t, string(data), string([]byte{aliasVersion, 'L', 0, 3, 'b', 'o', 'b'}))

	tx.Body = Transfer{Recipient: "alias:bob"}
	_, err = tx.Bytes()
	require.EqualError(t, err,
		"couldn't fingerprint transfer: invalid recipient alias 'alias:bob'")
}

func TestTransaction_Serialize(t *testing.T) {
	tx := makeTransfer()

	data, err := tx.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = tx.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode"))
}

func TestTransactionFactory_Deserialize(t *testing.T) {
	factory := NewTransactionFactory()

	msg, err := factory.Deserialize(fake.NewContext(), nil)
	require.NoError(t, err)
	require.IsType(t, &Transaction{}, msg)

	_, err = factory.Deserialize(fake.NewBadContext(), nil)
	require.EqualError(t, err, fake.Err("failed to decode"))

	_, err = factory.Deserialize(fake.NewContextWithFormat(serde.Format("BAD_TYPE")), nil)
	require.EqualError(t, err, "invalid transaction of type 'fake.Message'")
}

// -----------------------------------------------------------------------------
// Utility functions

func makeTransfer() *Transaction {
	return &Transaction{
		Type:            TypeTransfer,
		Version:         2,
		SenderPublicKey: append([]byte{}, testKey...),
		Fee:             100000000,
		Timestamp:       1609459200000,
		Body: Transfer{
			Recipient:  testRecipient,
			Amount:     120000000,
			Attachment: Base58{0xcc},
		},
	}
}
