package cli

import "time"

// StringFlag is a definition of a command flag expected to be parsed as a
// string.
//
// - implements cli.Flag
type StringFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    string
}

// Flag implements cli.Flag.
func (flag StringFlag) Flag() {}

// StringSliceFlag is a definition of a command flag expected to be parsed as a
// slice of strings.
//
// - implements cli.Flag
type StringSliceFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    []string
}

// Flag implements cli.Flag.
func (flag StringSliceFlag) Flag() {}

// DurationFlag is a definition of a command flag expected to be parsed as a
// duration.
//
// - implements cli.Flag
type DurationFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    time.Duration
}

// Flag implements cli.Flag.
func (flag DurationFlag) Flag() {}

// IntFlag is a definition of a command flag expected to be parsed as a integer.
//
// - implements cli.Flag
type IntFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    int
}

// Flag implements cli.Flag.
func (flag IntFlag) Flag() {}

// BoolFlag is a definition of a command flag expected to be parsed as a
// boolean.
//
// - implements cli.Flag
type BoolFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    bool
}

// Flag implements cli.Flag.
func (flag BoolFlag) Flag() {}

// Int64Flag is a definition of a command flag expected to be parsed as a
// signed 64-bits integer, such as a timestamp in milliseconds.
//
// - implements cli.Flag
type Int64Flag struct {
	Name     string
	Usage    string
	Required bool
	Value    int64
}

// Flag implements cli.Flag.
func (flag Int64Flag) Flag() {}

// Uint64Flag is a definition of a command flag expected to be parsed as an
// unsigned 64-bits integer, such as an amount or a fee.
//
// - implements cli.Flag
type Uint64Flag struct {
	Name     string
	Usage    string
	Required bool
	Value    uint64
}

// Flag implements cli.Flag.
func (flag Uint64Flag) Flag() {}
