package registry

import (
	"sort"
	"sync"

	"github.com/ltonetwork/lto/serde"
	"golang.org/x/xerrors"
)

// SimpleRegistry is a registry safe for concurrent use.
//
// - implements registry.Registry
type SimpleRegistry struct {
	sync.RWMutex
	engines map[serde.Format]serde.FormatEngine
}

// NewSimpleRegistry returns a new empty registry.
func NewSimpleRegistry() *SimpleRegistry {
	return &SimpleRegistry{
		engines: make(map[serde.Format]serde.FormatEngine),
	}
}

// Register implements registry.Registry.
func (r *SimpleRegistry) Register(format serde.Format, engine serde.FormatEngine) {
	r.Lock()
	r.engines[format] = engine
	r.Unlock()
}

// Get implements registry.Registry. It returns an engine that always fails
// when the format is unknown.
func (r *SimpleRegistry) Get(format serde.Format) serde.FormatEngine {
	r.RLock()
	engine := r.engines[format]
	r.RUnlock()

	if engine == nil {
		return missingEngine{format: format}
	}

	return engine
}

// Formats implements registry.Registry.
func (r *SimpleRegistry) Formats() []serde.Format {
	r.RLock()
	formats := make([]serde.Format, 0, len(r.engines))
	for format := range r.engines {
		formats = append(formats, format)
	}
	r.RUnlock()

	sort.Slice(formats, func(i, j int) bool {
		return formats[i] < formats[j]
	})

	return formats
}

// missingEngine is returned for the formats without an engine.
//
// - implements serde.FormatEngine
type missingEngine struct {
	format serde.Format
}

// Encode implements serde.FormatEngine. It always returns an error.
func (e missingEngine) Encode(serde.Context, serde.Message) ([]byte, error) {
	return nil, xerrors.Errorf("no engine registered for format '%s'", e.format)
}

// Decode implements serde.FormatEngine. It always returns an error.
func (e missingEngine) Decode(serde.Context, []byte) (serde.Message, error) {
	return nil, xerrors.Errorf("no engine registered for format '%s'", e.format)
}
