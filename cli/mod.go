// Package cli defines the Builder type, which allows one to build a CLI
// application in a modular way.
//
// 	builder := ucli.NewBuilder("ltotx", nil)
//
// 	cmd := builder.SetCommand("key")
// 	sub := cmd.SetSubCommand("address")
// 	sub.SetDescription("print the address of a seed")
// 	sub.SetFlags(cli.StringFlag{Name: "seed", Required: true})
// 	sub.SetAction(func(flags cli.Flags) error {
// 		fmt.Println(flags.String("seed"))
// 		return nil
// 	})
//
// 	builder.Build().Run(os.Args)
//
// The actions only depend on the Flags interface so that they can be tested
// without a real command line.
package cli

import (
	"time"
)

// Provider is the interface to register new commands.
type Provider interface {
	// SetCommand creates a new command with the given name and returns its
	// builder.
	SetCommand(name string) CommandBuilder
}

// Initializer is the interface of a component that provides commands to an
// application.
type Initializer interface {
	SetCommands(Provider)
}

// Builder is an application builder interface. One can set properties of an
// application then build it.
type Builder interface {
	Provider

	// Build returns the application.
	Build() Application
}

// Application is the main interface to run the CLI.
type Application interface {
	Run(arguments []string) error
}

// CommandBuilder is a command builder interface. One can set properties of a
// specific command like its name and description and what it should do when
// invoked.
type CommandBuilder interface {
	// SetDescription sets the value of the description for this command.
	SetDescription(value string)

	// SetFlags sets the flags for this command.
	SetFlags(...Flag)

	// SetAction sets the action for this command.
	SetAction(Action)

	// SetSubCommand creates a subcommand for this command.
	SetSubCommand(name string) CommandBuilder
}

// Action is a function that will be executed when a command is invoked.
type Action func(Flags) error

// Flag is an identifier for the definition of the flags.
type Flag interface {
	Flag()
}

// Flags provides the primitives to an action to read the flags.
type Flags interface {
	String(name string) string

	StringSlice(name string) []string

	Duration(name string) time.Duration

	Path(name string) string

	Int(name string) int

	Int64(name string) int64

	Uint64(name string) uint64

	Bool(name string) bool

	// IsSet returns true when the flag is given on the command line.
	IsSet(name string) bool
}
