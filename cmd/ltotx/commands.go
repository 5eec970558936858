package main

import (
	"io"

	"github.com/ltonetwork/lto/cli"
	"github.com/ltonetwork/lto/core/txn"
)

// commands registers the commands of the tool.
//
// - implements cli.Initializer
type commands struct {
	action action
}

func newCommands(printer io.Writer) commands {
	return commands{action: newAction(printer)}
}

// SetCommands implements cli.Initializer.
func (c commands) SetCommands(provider cli.Provider) {
	key := provider.SetCommand("key")
	key.SetDescription("manage the seed phrases of the accounts")

	newKey := key.SetSubCommand("new")
	newKey.SetDescription("create a random seed phrase")
	newKey.SetFlags(cli.StringFlag{
		Name:  "save",
		Usage: "if provided, save the seed phrase to that file",
	}, cli.BoolFlag{
		Name:  "force",
		Usage: "in the case it saves the seed phrase, will overwrite if needed",
	})
	newKey.SetAction(c.action.newKeyAction)

	address := key.SetSubCommand("address")
	address.SetDescription("print the public key and the address of a seed phrase")
	address.SetFlags(seedFlag(), keyFileFlag())
	address.SetAction(c.action.addressAction)

	tx := provider.SetCommand("tx")
	tx.SetDescription("build, sign and broadcast transactions")

	build := tx.SetSubCommand("build")
	build.SetDescription("build and sign a new transaction")
	build.SetFlags(
		cli.StringFlag{
			Name:     "kind",
			Usage:    "kind of the transaction: " + kindNames(),
			Required: true,
		},
		cli.StringSliceFlag{
			Name:  "param",
			Usage: "field of the body as key=value, such as amount=100",
		},
		seedFlag(),
		keyFileFlag(),
		cli.StringFlag{
			Name:  "sender",
			Usage: "base58 public key of the sender when it does not sign slot 0",
		},
		cli.IntFlag{
			Name:  "version",
			Usage: "version of the transaction, the latest by default",
		},
		cli.Uint64Flag{
			Name:  "fee",
			Usage: "fee of the transaction, the base fee of the kind by default",
		},
		cli.Uint64Flag{
			Name:  "additional-fee",
			Usage: "amount added to the base fee, such as the fee of a smart account",
		},
		cli.Int64Flag{
			Name:  "timestamp",
			Usage: "timestamp in milliseconds, the current time by default",
		},
		outFlag(),
	)
	build.SetAction(c.action.buildAction)

	sign := tx.SetSubCommand("sign")
	sign.SetDescription("add proofs to an existing transaction")
	sign.SetFlags(seedFlag(), keyFileFlag(), inFlag(), idFlag(), outFlag())
	sign.SetAction(c.action.signAction)

	broadcast := tx.SetSubCommand("broadcast")
	broadcast.SetDescription("send a transaction to the node, or an order to the matcher")
	broadcast.SetFlags(
		inFlag(),
		idFlag(),
		outFlag(),
		cli.DurationFlag{
			Name:  "wait",
			Usage: "if provided, wait for the transaction to be included",
		},
		cli.StringFlag{
			Name:  "amount-asset",
			Usage: "amount asset of a cancelled order, the native token by default",
		},
		cli.StringFlag{
			Name:  "price-asset",
			Usage: "price asset of a cancelled order, the native token by default",
		},
	)
	broadcast.SetAction(c.action.broadcastAction)

	list := tx.SetSubCommand("list")
	list.SetDescription("list the identifiers of the pending transactions")
	list.SetFlags(cli.StringFlag{
		Name:  "prefix",
		Usage: "if provided, only list the identifiers that start with it",
	})
	list.SetAction(c.action.listAction)
}

func seedFlag() cli.Flag {
	return cli.StringSliceFlag{
		Name: "seed",
		Usage: "seed phrase of a signer, repeated for each slot; '-' leaves " +
			"a slot empty and '<slot>:<seed>' signs a given slot",
	}
}

func keyFileFlag() cli.Flag {
	return cli.StringFlag{
		Name:  "keyfile",
		Usage: "file of the seed phrase of the first signer, created if missing",
	}
}

func inFlag() cli.Flag {
	return cli.StringFlag{
		Name:  "in",
		Usage: "file of the JSON transaction",
	}
}

func idFlag() cli.Flag {
	return cli.StringFlag{
		Name:  "id",
		Usage: "identifier of a transaction of the pending store",
	}
}

func outFlag() cli.Flag {
	return cli.StringFlag{
		Name:  "out",
		Usage: "if provided, write the JSON transaction to that file",
	}
}

func kindNames() string {
	names := ""
	for i, kind := range txn.Kinds() {
		if i > 0 {
			names += ", "
		}
		names += kind.Name
	}

	return names
}
