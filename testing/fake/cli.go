package fake

import (
	"time"
)

// Flags is a fake implementation of the command line flags where the values
// are set directly in the map.
//
// - implements cli.Flags
type Flags map[string]interface{}

// String implements cli.Flags.
func (f Flags) String(name string) string {
	v, _ := f[name].(string)
	return v
}

// StringSlice implements cli.Flags.
func (f Flags) StringSlice(name string) []string {
	v, _ := f[name].([]string)
	return v
}

// Duration implements cli.Flags.
func (f Flags) Duration(name string) time.Duration {
	v, _ := f[name].(time.Duration)
	return v
}

// Path implements cli.Flags.
func (f Flags) Path(name string) string {
	return f.String(name)
}

// Int implements cli.Flags.
func (f Flags) Int(name string) int {
	v, _ := f[name].(int)
	return v
}

// Int64 implements cli.Flags.
func (f Flags) Int64(name string) int64 {
	v, _ := f[name].(int64)
	return v
}

// Uint64 implements cli.Flags.
func (f Flags) Uint64(name string) uint64 {
	v, _ := f[name].(uint64)
	return v
}

// Bool implements cli.Flags.
func (f Flags) Bool(name string) bool {
	v, _ := f[name].(bool)
	return v
}

// IsSet implements cli.Flags.
func (f Flags) IsSet(name string) bool {
	_, found := f[name]
	return found
}
