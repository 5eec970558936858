package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ltonetwork/lto/core/txn"
	"github.com/ltonetwork/lto/serde/json"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{
		"amount=10",
		"assetPair.amountAsset=abc",
		"assetPair.priceAsset=",
		"attachment=a=b",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"amount": "10",
		"assetPair": map[string]interface{}{
			"amountAsset": "abc",
			"priceAsset":  "",
		},
		"attachment": "a=b",
	}, params)

	_, err = parseParams([]string{"amount"})
	require.EqualError(t, err, "invalid parameter 'amount', expected key=value")

	_, err = parseParams([]string{"=10"})
	require.EqualError(t, err, "invalid parameter '=10', expected key=value")

	_, err = parseParams([]string{"amount=10", "amount.value=10"})
	require.EqualError(t, err, "parameter 'amount' is not an object")
}

func TestAction_DecodeBody_Transfer(t *testing.T) {
	a := newTestAction(new(bytes.Buffer))

	body, err := a.decodeBody(mustKind("transfer"), []string{
		"recipient=" + testRecipient,
		"amount=120000000",
		"attachment=StV1DL6CwTryKyV",
	}, 'T')
	require.NoError(t, err)
	require.Equal(t, txn.Transfer{
		Recipient:  testRecipient,
		Amount:     120000000,
		Attachment: txn.Base58("hello world"),
	}, body)

	_, err = a.decodeBody(mustKind("transfer"), []string{"amount=abc"}, 'T')
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid parameters: ")

	_, err = a.decodeBody(mustKind("transfer"), []string{"chainId=T"}, 'T')
	require.Error(t, err)
	require.Contains(t, err.Error(), "chainId")

	_, err = a.decodeBody(mustKind("transfer"), []string{"amount"}, 'T')
	require.EqualError(t, err, "invalid parameter 'amount', expected key=value")
}

func TestAction_DecodeBody_Chain(t *testing.T) {
	a := newTestAction(new(bytes.Buffer))

	body, err := a.decodeBody(mustKind("issue"), []string{
		"name=token",
		"quantity=1000",
		"decimals=8",
		"reissuable=true",
		"script=base64:AQID",
	}, 'T')
	require.NoError(t, err)
	require.Equal(t, txn.Issue{
		ChainID:    'T',
		Name:       "token",
		Quantity:   1000,
		Decimals:   8,
		Reissuable: true,
		Script:     txn.Script{1, 2, 3},
	}, body)

	body, err = a.decodeBody(mustKind("alias"), []string{"alias=bob", "chainId=L"}, 'T')
	require.NoError(t, err)
	require.Equal(t, txn.Alias{ChainID: 'L', Alias: "bob"}, body)

	body, err = a.decodeBody(mustKind("set-script"), nil, 'T')
	require.NoError(t, err)
	require.Equal(t, txn.SetScript{ChainID: 'T'}, body)
}

func TestAction_DecodeBody_MassTransfer(t *testing.T) {
	a := newTestAction(new(bytes.Buffer))

	body, err := a.decodeBody(mustKind("mass-transfer"), []string{
		"transfers=" + testRecipient + ":10,alias:L:bob:20",
	}, 'L')
	require.NoError(t, err)
	require.Equal(t, []txn.TransferEntry{
		{Recipient: testRecipient, Amount: 10},
		{Recipient: "alias:L:bob", Amount: 20},
	}, body.(txn.MassTransfer).Transfers)

	body, err = a.decodeBody(mustKind("mass-transfer"), []string{"transfers="}, 'L')
	require.NoError(t, err)
	require.Equal(t, []txn.TransferEntry{}, body.(txn.MassTransfer).Transfers)

	_, err = a.decodeBody(mustKind("mass-transfer"), []string{"transfers=abc"}, 'L')
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid transfer 'abc', expected recipient:amount")

	_, err = a.decodeBody(mustKind("mass-transfer"), []string{"transfers=abc:x"}, 'L')
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid amount of transfer 'abc:x'")
}

func TestAction_DecodeBody_Order(t *testing.T) {
	a := newTestAction(new(bytes.Buffer))

	asset := txn.Base58(bytes.Repeat([]byte{1}, txn.AssetIDSize))

	body, err := a.decodeBody(mustKind("order"), []string{
		"matcherPublicKey=" + txn.Base58(testKey).String(),
		"assetPair.amountAsset=" + asset.String(),
		"orderType=sell",
		"price=10",
		"amount=20",
	}, 'L')
	require.NoError(t, err)

	order := body.(txn.Order)
	require.Equal(t, txn.Base58(testKey), order.MatcherPublicKey)
	require.Equal(t, asset, order.AssetPair.AmountAsset)
	require.Empty(t, order.AssetPair.PriceAsset)
	require.Equal(t, txn.OrderSell, order.OrderType)
	require.Equal(t, uint64(10), order.Price)
	require.Equal(t, uint64(20), order.Amount)
}

func TestAction_DecodeBody_Exchange(t *testing.T) {
	a := newTestAction(new(bytes.Buffer))

	order := &txn.Transaction{
		Type:            txn.TypeOrder,
		Version:         2,
		SenderPublicKey: testKey,
		Fee:             300000,
		Timestamp:       1000,
		Proofs:          txn.Proofs{{1, 2}},
		Body: txn.Order{
			MatcherPublicKey: testKey,
			OrderType:        txn.OrderBuy,
			Price:            10,
			Amount:           20,
			Expiration:       2000,
		},
	}

	data, err := order.Serialize(json.NewContext())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "order.json")
	require.NoError(t, os.WriteFile(path, data, 0600))

	body, err := a.decodeBody(mustKind("exchange"), []string{
		"order1=" + path,
		"order2=" + path,
		"price=10",
		"amount=20",
	}, 'L')
	require.NoError(t, err)

	exchange := body.(txn.Exchange)
	require.NotNil(t, exchange.Order1)
	require.NotNil(t, exchange.Order2)
	require.Equal(t, order.Proofs, exchange.Order1.Proofs)
	require.Equal(t, uint64(300000), exchange.Order2.Fee)
	require.Equal(t, uint64(10), exchange.Price)

	_, err = a.decodeBody(mustKind("exchange"), []string{"order1=/does/not/exist"}, 'L')
	require.Error(t, err)
	require.Contains(t, err.Error(), "couldn't read order: failed to read file: ")
}

// -----------------------------------------------------------------------------
// Utility functions

func mustKind(name string) txn.Kind {
	kind, found := txn.KindByName(name)
	if !found {
		panic("unknown kind " + name)
	}

	return kind
}
