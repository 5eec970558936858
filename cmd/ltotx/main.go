// Package main implements ltotx, a command line tool to build, sign and
// broadcast the transactions of the LTO network.
//
// A transfer signed by a single account:
//
//	ltotx key new --save alice.seed
//	ltotx tx build --kind transfer --keyfile alice.seed \
//		--param recipient=3JmCa4jLVv7Yn2XkCnBUGsa7WNFVEMxAfWe \
//		--param amount=100000000 --out transfer.json
//	ltotx --node https://nodes.lto.network tx broadcast --in transfer.json
//
// A multisig transaction goes through the pending store, each co-signer
// adding its proof at its slot:
//
//	ltotx --store pending.db tx build --kind burn --sender <public key> \
//		--param assetId=<asset> --param quantity=10 --seed "1:alice seed"
//	ltotx --store pending.db tx sign --id <id> --seed "2:bob seed"
//	ltotx --store pending.db tx broadcast --id <id> --wait 1m
//
// The global flags can be given in a YAML file with --config.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ltonetwork/lto/cli"
	"github.com/ltonetwork/lto/cli/ucli"
)

var builder cli.Builder = ucli.NewBuilder("ltotx", nil, globalFlags...)
var printer io.Writer = os.Stderr
var exit = os.Exit

func main() {
	err := run(os.Args, newCommands(os.Stdout))
	if err != nil {
		fmt.Fprintf(printer, "%+v\n", err)
		exit(1)
	}
}

func run(args []string, inits ...cli.Initializer) error {
	for _, init := range inits {
		init.SetCommands(builder)
	}

	app := builder.Build()
	err := app.Run(args)
	if err != nil {
		return err
	}

	return nil
}
