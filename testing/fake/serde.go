package fake

import (
	"encoding/json"

	"github.com/ltonetwork/lto/serde"
)

const (
	// GoodFormat is the format of a fake engine that succeeds.
	GoodFormat = serde.Format("FakeGood")
	// BadFormat is the format of a fake engine that fails.
	BadFormat = serde.Format("FakeBad")
)

// Message is a fake implementation of a serde message.
//
// - implements serde.Message
type Message struct{}

// Serialize implements serde.Message.
func (m Message) Serialize(serde.Context) ([]byte, error) {
	return []byte("{}"), nil
}

// Format is a fake format engine implementation.
//
// - implements serde.FormatEngine
type Format struct {
	err  error
	Msg  serde.Message
	Call *Call
}

// NewBadFormat returns a format engine that will return errors when
// appropriate.
func NewBadFormat() Format {
	return Format{err: fakeErr}
}

// Encode implements serde.FormatEngine.
func (f Format) Encode(ctx serde.Context, m serde.Message) ([]byte, error) {
	f.Call.Add(ctx, m)

	return []byte("fake format"), f.err
}

// Decode implements serde.FormatEngine.
func (f Format) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	f.Call.Add(ctx, data)

	return f.Msg, f.err
}

// ContextEngine is a fake implementation of a serde context engine.
//
// - implements serde.ContextEngine
type ContextEngine struct {
	format serde.Format
	err    error
}

// NewContext returns a serialization context for the good format.
func NewContext() serde.Context {
	return serde.NewContext(ContextEngine{format: GoodFormat})
}

// NewContextWithFormat returns a serialization context for the format.
func NewContextWithFormat(f serde.Format) serde.Context {
	return serde.NewContext(ContextEngine{format: f})
}

// NewBadContext returns a serialization context whose format fails and whose
// marshaling returns an error.
func NewBadContext() serde.Context {
	return serde.NewContext(ContextEngine{format: BadFormat, err: fakeErr})
}

// GetFormat implements serde.ContextEngine.
func (ctx ContextEngine) GetFormat() serde.Format {
	return ctx.format
}

// Marshal implements serde.ContextEngine.
func (ctx ContextEngine) Marshal(m interface{}) ([]byte, error) {
	if ctx.err != nil {
		return nil, ctx.err
	}

	return json.Marshal(m)
}

// Unmarshal implements serde.ContextEngine.
func (ctx ContextEngine) Unmarshal(data []byte, m interface{}) error {
	if ctx.err != nil {
		return ctx.err
	}

	return json.Unmarshal(data, m)
}
