// Package registry maps the formats to the engines of a message type, such as
// the JSON engine of the transactions.
//
// Looking up an unknown format never returns nil: the engine returned in that
// case fails every call, so that the messages can encode and decode without
// checking the format first.
package registry

import (
	"github.com/ltonetwork/lto/serde"
)

// Registry stores the format engines of a message type.
type Registry interface {
	// Register binds the engine to the format, replacing any previous one.
	Register(serde.Format, serde.FormatEngine)

	// Get returns the engine bound to the format.
	Get(serde.Format) serde.FormatEngine

	// Formats returns the formats that have an engine, sorted by name.
	Formats() []serde.Format
}
