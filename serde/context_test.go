package serde

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContext_GetFormat(t *testing.T) {
	ctx := NewContext(textEngine{})

	require.Equal(t, Format("TEXT"), ctx.GetFormat())
}

func TestContext_Encode(t *testing.T) {
	ctx := NewContext(textEngine{})

	data, err := ctx.Encode(memo("hello"))
	require.NoError(t, err)
	require.Equal(t, "TEXT:hello", string(data))
}

func TestContext_Decode(t *testing.T) {
	ctx := NewContext(textEngine{})

	msg, err := ctx.Decode(memoFactory{}, []byte("TEXT:hello"))
	require.NoError(t, err)
	require.Equal(t, memo("hello"), msg)
}

// -----------------------------------------------------------------------------
// Utility functions

type textEngine struct{}

func (textEngine) GetFormat() Format {
	return Format("TEXT")
}

func (textEngine) Marshal(value interface{}) ([]byte, error) {
	return []byte("TEXT:" + value.(string)), nil
}

func (textEngine) Unmarshal(data []byte, value interface{}) error {
	*value.(*string) = string(data[len("TEXT:"):])
	return nil
}

type memo string

func (m memo) Serialize(ctx Context) ([]byte, error) {
	return ctx.Marshal(string(m))
}

type memoFactory struct{}

func (memoFactory) Deserialize(ctx Context, data []byte) (Message, error) {
	var text string
	err := ctx.Unmarshal(data, &text)

	return memo(text), err
}
