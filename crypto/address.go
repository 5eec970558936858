package crypto

import (
	"bytes"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/xerrors"
)

const (
	// AddressVersion is the first byte of every address.
	AddressVersion = 0x01

	// AddressLength is the length of the binary form of an address.
	AddressLength = 26

	addressHashLength = 20
	checksumLength    = 4
)

// Address is the binary form of an account address derived from its public
// key and the chain identifier.
type Address []byte

// NewAddress returns the address of the public key for the chain.
func NewAddress(publicKey []byte, chainID byte) Address {
	buffer := make([]byte, 0, AddressLength)
	buffer = append(buffer, AddressVersion, chainID)
	buffer = append(buffer, SecureHash(publicKey)[:addressHashLength]...)
	buffer = append(buffer, SecureHash(buffer)[:checksumLength]...)

	return buffer
}

// ParseAddress decodes the base58 text of an address and verifies its
// checksum.
func ParseAddress(text string) (Address, error) {
	data := base58.Decode(text)
	if len(data) != AddressLength {
		return nil, xerrors.Errorf("invalid address length %d", len(data))
	}

	if data[0] != AddressVersion {
		return nil, xerrors.Errorf("unknown address version %d", data[0])
	}

	body := data[:AddressLength-checksumLength]
	if !bytes.Equal(SecureHash(body)[:checksumLength], data[AddressLength-checksumLength:]) {
		return nil, xerrors.New("invalid address checksum")
	}

	return data, nil
}

// ChainID returns the chain identifier of the address.
func (a Address) ChainID() byte {
	if len(a) < 2 {
		return 0
	}

	return a[1]
}

// String implements fmt.Stringer. It returns the base58 text of the address.
func (a Address) String() string {
	return base58.Encode(a)
}
