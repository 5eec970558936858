package txn

import (
	"encoding/base64"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/xerrors"
)

const scriptPrefix = "base64:"

// Base58 is a slice of bytes whose text form is base58. It is used for keys,
// asset identifiers and attachments.
type Base58 []byte

// ParseBase58 returns the bytes of the base58 text.
func ParseBase58(text string) (Base58, error) {
	return decodeBase58([]byte(text))
}

// MarshalText implements encoding.TextMarshaler.
func (b Base58) MarshalText() ([]byte, error) {
	return []byte(base58.Encode(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Base58) UnmarshalText(text []byte) error {
	data, err := decodeBase58(text)
	if err != nil {
		return err
	}

	*b = data

	return nil
}

// String implements fmt.Stringer.
func (b Base58) String() string {
	return base58.Encode(b)
}

// Script is the compiled bytes of a script. Its text form is the base64
// encoding prefixed by "base64:".
type Script []byte

// MarshalText implements encoding.TextMarshaler.
func (s Script) MarshalText() ([]byte, error) {
	return []byte(scriptPrefix + base64.StdEncoding.EncodeToString(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The prefix is optional.
func (s *Script) UnmarshalText(text []byte) error {
	str := strings.TrimPrefix(string(text), scriptPrefix)
	if str == "" {
		*s = nil
		return nil
	}

	data, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return xerrors.Errorf("invalid script: %v", err)
	}

	*s = data

	return nil
}

func decodeBase58(text []byte) ([]byte, error) {
	if len(text) == 0 {
		return []byte{}, nil
	}

	data := base58.Decode(string(text))
	if len(data) == 0 {
		return nil, xerrors.Errorf("invalid base58 text '%s'", text)
	}

	return data, nil
}
