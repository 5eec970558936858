package main

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/ltonetwork/lto/core/txn"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/xerrors"
)

var (
	transactionType = reflect.TypeOf(&txn.Transaction{})
	transfersType   = reflect.TypeOf([]txn.TransferEntry{})
)

// parseParams returns the tree of the "key=value" parameters. A dot in a key
// is a nested field, such as "assetPair.amountAsset".
func parseParams(params []string) (map[string]interface{}, error) {
	root := map[string]interface{}{}

	for _, param := range params {
		parts := strings.SplitN(param, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, xerrors.Errorf("invalid parameter '%s', expected key=value", param)
		}

		keys := strings.Split(parts[0], ".")
		node := root

		for _, key := range keys[:len(keys)-1] {
			child, ok := node[key].(map[string]interface{})
			if !ok {
				if _, found := node[key]; found {
					return nil, xerrors.Errorf("parameter '%s' is not an object", key)
				}

				child = map[string]interface{}{}
				node[key] = child
			}

			node = child
		}

		node[keys[len(keys)-1]] = parts[1]
	}

	return root, nil
}

// decodeBody returns the body of the kind populated with the parameters. The
// names of the parameters are the JSON names of the fields.
func (a action) decodeBody(kind txn.Kind, params []string, chainID byte) (txn.Body, error) {
	input, err := parseParams(params)
	if err != nil {
		return nil, err
	}

	ptr := kind.New()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			a.orderHook,
			transfersHook,
			chainHook,
			mapstructure.TextUnmarshallerHookFunc(),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "json",
		Result:           ptr,
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to create decoder: %v", err)
	}

	err = decoder.Decode(input)
	if err != nil {
		return nil, xerrors.Errorf("invalid parameters: %v", err)
	}

	body, ok := ptr.(txn.Body)
	if !ok {
		return nil, xerrors.Errorf("invalid body of type '%T'", ptr)
	}

	return withChain(body.Clone(), chainID), nil
}

// orderHook reads the orders of an exchange from the files named by the
// parameters.
func (a action) orderHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != transactionType {
		return data, nil
	}

	order, err := a.readTransaction(data.(string))
	if err != nil {
		return nil, xerrors.Errorf("couldn't read order: %v", err)
	}

	return order, nil
}

// transfersHook parses the recipients of a mass transfer written as
// "recipient:amount" and separated by commas.
func transfersHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != transfersType {
		return data, nil
	}

	text := data.(string)
	if text == "" {
		return []txn.TransferEntry{}, nil
	}

	entries := strings.Split(text, ",")
	transfers := make([]txn.TransferEntry, len(entries))

	for i, entry := range entries {
		// Aliases contain colons, the amount is after the last one.
		sep := strings.LastIndex(entry, ":")
		if sep <= 0 {
			return nil, xerrors.Errorf("invalid transfer '%s', expected recipient:amount", entry)
		}

		amount, err := strconv.ParseUint(entry[sep+1:], 10, 64)
		if err != nil {
			return nil, xerrors.Errorf("invalid amount of transfer '%s': %v", entry, err)
		}

		transfers[i] = txn.TransferEntry{
			Recipient: strings.TrimSpace(entry[:sep]),
			Amount:    amount,
		}
	}

	return transfers, nil
}

// chainHook decodes a chain identifier given as its letter.
func chainHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Uint8 {
		return data, nil
	}

	text := data.(string)
	if len(text) != 1 || unicode.IsDigit(rune(text[0])) {
		return data, nil
	}

	return text[0], nil
}

func withChain(body txn.Body, chainID byte) txn.Body {
	switch b := body.(type) {
	case txn.Issue:
		if b.ChainID == 0 {
			b.ChainID = chainID
		}
		return b
	case txn.Reissue:
		if b.ChainID == 0 {
			b.ChainID = chainID
		}
		return b
	case txn.Burn:
		if b.ChainID == 0 {
			b.ChainID = chainID
		}
		return b
	case txn.Alias:
		if b.ChainID == 0 {
			b.ChainID = chainID
		}
		return b
	case txn.SetScript:
		if b.ChainID == 0 {
			b.ChainID = chainID
		}
		return b
	default:
		return body
	}
}
