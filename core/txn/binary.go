package txn

import (
	"encoding/binary"
	"io"
	"math"
	"strings"

	"github.com/ltonetwork/lto/crypto"
	"golang.org/x/xerrors"
)

const (
	// PublicKeySize is the length of a sender or matcher public key.
	PublicKeySize = 32
	// AssetIDSize is the length of an asset identifier.
	AssetIDSize = 32

	aliasPrefix  = "alias:"
	aliasVersion = 0x02
)

// encoder writes the fields of the canonical bytes. The first error is kept
// and every following write is ignored so that the layouts can be written
// without checking each field.
type encoder struct {
	w   io.Writer
	err error
}

func newEncoder(w io.Writer) *encoder {
	return &encoder{w: w}
}

func (e *encoder) write(field string, data []byte) {
	if e.err != nil {
		return
	}

	_, err := e.w.Write(data)
	if err != nil {
		e.err = xerrors.Errorf("couldn't write %s: %v", field, err)
	}
}

func (e *encoder) fail(format string, args ...interface{}) {
	if e.err == nil {
		e.err = xerrors.Errorf(format, args...)
	}
}

func (e *encoder) byte(field string, v byte) {
	e.write(field, []byte{v})
}

func (e *encoder) bool(field string, v bool) {
	if v {
		e.byte(field, 1)
	} else {
		e.byte(field, 0)
	}
}

func (e *encoder) uint16(field string, v uint16) {
	buffer := make([]byte, 2)
	binary.BigEndian.PutUint16(buffer, v)
	e.write(field, buffer)
}

func (e *encoder) uint32(field string, v uint32) {
	buffer := make([]byte, 4)
	binary.BigEndian.PutUint32(buffer, v)
	e.write(field, buffer)
}

func (e *encoder) uint64(field string, v uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, v)
	e.write(field, buffer)
}

func (e *encoder) int64(field string, v int64) {
	e.uint64(field, uint64(v))
}

// fixed writes data that must have exactly the given length.
func (e *encoder) fixed(field string, data []byte, size int) {
	if len(data) != size {
		e.fail("invalid %s length %d, expected %d", field, len(data), size)
		return
	}

	e.write(field, data)
}

// count writes a number of items, or a length, on two bytes.
func (e *encoder) count(field string, n int) {
	if n > math.MaxUint16 {
		e.fail("%s is too long: %d", field, n)
		return
	}

	e.uint16(field, uint16(n))
}

// short writes data prefixed by its length on two bytes.
func (e *encoder) short(field string, data []byte) {
	if len(data) > math.MaxUint16 {
		e.fail("%s is too long: %d bytes", field, len(data))
		return
	}

	e.uint16(field, uint16(len(data)))
	e.write(field, data)
}

// optional writes a flag followed by the fixed-size data when it is set.
func (e *encoder) optional(field string, data []byte, size int) {
	if len(data) == 0 {
		e.byte(field, 0)
		return
	}

	e.byte(field, 1)
	e.fixed(field, data, size)
}

// optionalShort writes a flag followed by the length-prefixed data when it is
// set.
func (e *encoder) optionalShort(field string, data []byte) {
	if data == nil {
		e.byte(field, 0)
		return
	}

	e.byte(field, 1)
	e.short(field, data)
}

func (e *encoder) publicKey(field string, key []byte) {
	e.fixed(field, key, PublicKeySize)
}

// recipient writes either an address or an alias in the form
// "alias:<chain>:<name>".
func (e *encoder) recipient(field string, recipient string) {
	if strings.HasPrefix(recipient, aliasPrefix) {
		parts := strings.SplitN(strings.TrimPrefix(recipient, aliasPrefix), ":", 2)
		if len(parts) != 2 || len(parts[0]) != 1 {
			e.fail("invalid %s alias '%s'", field, recipient)
			return
		}

		e.alias(field, parts[0][0], parts[1])
		return
	}

	addr, err := crypto.ParseAddress(recipient)
	if err != nil {
		e.fail("invalid %s: %v", field, err)
		return
	}

	e.write(field, addr)
}

func (e *encoder) alias(field string, chainID byte, name string) {
	if len(name) > math.MaxUint16 {
		e.fail("%s is too long: %d bytes", field, len(name))
		return
	}

	buffer := make([]byte, 0, 4+len(name))
	buffer = append(buffer, aliasVersion, chainID)
	buffer = append(buffer, byte(len(name)>>8), byte(len(name)))
	buffer = append(buffer, name...)

	e.write(field, buffer)
}

func (e *encoder) proofs(field string, proofs Proofs) {
	e.count(field, len(proofs))

	for _, proof := range proofs {
		e.short(field, proof)
	}
}

// order writes an order of an exchange with its proofs, as they are part of
// the content of the exchange.
func (e *encoder) order(field string, order *Transaction) {
	if e.err != nil {
		return
	}

	if order == nil {
		e.fail("missing %s", field)
		return
	}

	data, err := order.Bytes()
	if err != nil {
		e.fail("invalid %s: %v", field, err)
		return
	}

	e.uint32(field, uint32(len(data)))
	e.write(field, data)
	e.proofs(field, order.Proofs)
}
