package serde

// ContextEngine is the part of a context that knows the encoding rules of a
// format.
type ContextEngine interface {
	// GetFormat returns the format the engine speaks.
	GetFormat() Format

	// Marshal returns the encoded bytes of the value.
	Marshal(value interface{}) ([]byte, error)

	// Unmarshal populates the value with the encoded data.
	Unmarshal(data []byte, value interface{}) error
}

// Context is handed to the format engines of the messages. It tells which
// format is expected and provides the primitives to encode in that format.
type Context struct {
	ContextEngine
}

// NewContext returns a context backed by the engine.
func NewContext(engine ContextEngine) Context {
	return Context{ContextEngine: engine}
}

// Encode serializes the message in the format of the context.
func (ctx Context) Encode(msg Message) ([]byte, error) {
	return msg.Serialize(ctx)
}

// Decode deserializes the data with the factory in the format of the context.
func (ctx Context) Decode(f Factory, data []byte) (Message, error) {
	return f.Deserialize(ctx, data)
}
