// Package ucli implements the cli builder on top of urfave/cli.
//
// The global flags of the application can also be given through the
// environment: the flag "node" of the application "ltotx" is read from
// LTOTX_NODE when it is missing from the command line.
package ucli

import (
	"fmt"
	"strings"

	"github.com/ltonetwork/lto/cli"
	urfave "github.com/urfave/cli/v2"
)

// Builder implements a cli builder based on urfave/cli.
//
// - implements cli.Builder
type Builder struct {
	name     string
	action   cli.Action
	flags    []cli.Flag
	commands []*cmdBuilder
}

// NewBuilder returns a new builder for the application. The action runs when
// no command is given and can be nil. The flags are global to every command.
func NewBuilder(name string, action cli.Action, flags ...cli.Flag) cli.Builder {
	return &Builder{
		name:   name,
		action: action,
		flags:  flags,
	}
}

// Build implements cli.Builder.
func (b *Builder) Build() cli.Application {
	app := &urfave.App{
		Name:     b.name,
		Action:   makeAction(b.action),
		Flags:    buildFlags(b.flags, envPrefix(b.name)),
		Commands: buildCommands(b.commands),
	}

	app.Setup()

	return app
}

// SetCommand implements cli.Provider.
func (b *Builder) SetCommand(name string) cli.CommandBuilder {
	cmd := &cmdBuilder{name: name}
	b.commands = append(b.commands, cmd)

	return cmd
}

// cmdBuilder collects the definition of a command until the application is
// built.
//
// - implements cli.CommandBuilder
type cmdBuilder struct {
	name        string
	description string
	action      cli.Action
	flags       []cli.Flag
	subcommands []*cmdBuilder
}

// SetDescription implements cli.CommandBuilder.
func (b *cmdBuilder) SetDescription(value string) {
	b.description = value
}

// SetFlags implements cli.CommandBuilder.
func (b *cmdBuilder) SetFlags(flags ...cli.Flag) {
	b.flags = flags
}

// SetAction implements cli.CommandBuilder.
func (b *cmdBuilder) SetAction(action cli.Action) {
	b.action = action
}

// SetSubCommand implements cli.CommandBuilder.
func (b *cmdBuilder) SetSubCommand(name string) cli.CommandBuilder {
	sub := &cmdBuilder{name: name}
	b.subcommands = append(b.subcommands, sub)

	return sub
}

func buildCommands(cmds []*cmdBuilder) []*urfave.Command {
	commands := make([]*urfave.Command, len(cmds))

	for i, cmd := range cmds {
		commands[i] = &urfave.Command{
			Name:        cmd.name,
			Usage:       cmd.description,
			Action:      makeAction(cmd.action),
			Flags:       buildFlags(cmd.flags, ""),
			Subcommands: buildCommands(cmd.subcommands),
		}
	}

	return commands
}

// buildFlags converts the flag definitions. When the prefix is not empty, each
// flag can also be set by the environment variable named after it.
func buildFlags(flags []cli.Flag, prefix string) []urfave.Flag {
	res := make([]urfave.Flag, len(flags))

	for i, f := range flags {
		res[i] = buildFlag(f, prefix)
	}

	return res
}

func buildFlag(f cli.Flag, prefix string) urfave.Flag {
	switch e := f.(type) {
	case cli.StringFlag:
		return &urfave.StringFlag{
			Name:     e.Name,
			Usage:    e.Usage,
			Required: e.Required,
			Value:    e.Value,
			EnvVars:  envVars(prefix, e.Name),
		}
	case cli.StringSliceFlag:
		return &urfave.StringSliceFlag{
			Name:     e.Name,
			Usage:    e.Usage,
			Required: e.Required,
			Value:    urfave.NewStringSlice(e.Value...),
			EnvVars:  envVars(prefix, e.Name),
		}
	case cli.DurationFlag:
		return &urfave.DurationFlag{
			Name:     e.Name,
			Usage:    e.Usage,
			Required: e.Required,
			Value:    e.Value,
			EnvVars:  envVars(prefix, e.Name),
		}
	case cli.IntFlag:
		return &urfave.IntFlag{
			Name:     e.Name,
			Usage:    e.Usage,
			Required: e.Required,
			Value:    e.Value,
			EnvVars:  envVars(prefix, e.Name),
		}
	case cli.Int64Flag:
		return &urfave.Int64Flag{
			Name:     e.Name,
			Usage:    e.Usage,
			Required: e.Required,
			Value:    e.Value,
			EnvVars:  envVars(prefix, e.Name),
		}
	case cli.Uint64Flag:
		return &urfave.Uint64Flag{
			Name:     e.Name,
			Usage:    e.Usage,
			Required: e.Required,
			Value:    e.Value,
			EnvVars:  envVars(prefix, e.Name),
		}
	case cli.BoolFlag:
		return &urfave.BoolFlag{
			Name:     e.Name,
			Usage:    e.Usage,
			Required: e.Required,
			Value:    e.Value,
			EnvVars:  envVars(prefix, e.Name),
		}
	default:
		panic(fmt.Sprintf("flag type '%T' not supported", f))
	}
}

func envPrefix(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func envVars(prefix, name string) []string {
	if prefix == "" {
		return nil
	}

	return []string{prefix + "_" + envPrefix(name)}
}

// makeAction transforms a cli.Action to its urfave form. The urfave context
// provides the flags to the action.
func makeAction(action cli.Action) urfave.ActionFunc {
	if action == nil {
		return nil
	}

	return func(ctx *urfave.Context) error {
		return action(ctx)
	}
}
