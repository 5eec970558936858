// Package serde defines the primitives to serialize and deserialize (serde)
// messages.
//
// Each message registers a format engine per format it supports. The context
// passed to the serialization tells which format is expected, so that the
// same transaction can be encoded as JSON for the node API or in another
// format without the message knowing the details.
package serde

import "io"

// Format is the identifier of a format implementation.
type Format string

const (
	// FormatJSON is the identifier for JSON formats.
	FormatJSON Format = "JSON"
)

// Message is the interface a data model should implement to be serialized.
type Message interface {
	// Serialize serializes the object by complying to the context format.
	Serialize(ctx Context) ([]byte, error)
}

// Fingerprinter is an interface to fingerprint an object.
type Fingerprinter interface {
	// Fingerprint writes a deterministic binary representation of the object
	// into the writer.
	Fingerprint(writer io.Writer) error
}

// Factory is the interface to implement to instantiate a message.
type Factory interface {
	// Deserialize deserializes the message instantiated from the data.
	Deserialize(ctx Context, data []byte) (Message, error)
}

// FormatEngine is the interface to implement to create a format for a
// message.
type FormatEngine interface {
	// Encode returns the bytes of the message according to the format.
	Encode(ctx Context, message Message) ([]byte, error)

	// Decode returns the message populated with the data according to the
	// format.
	Decode(ctx Context, data []byte) (Message, error)
}
