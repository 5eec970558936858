package main

import (
	"fmt"

	"github.com/ltonetwork/lto/cli"
	"github.com/ltonetwork/lto/core/txn"
	"github.com/ltonetwork/lto/core/txn/signing"
	"github.com/ltonetwork/lto/crypto"
	"golang.org/x/xerrors"
)

func (a action) newKeyAction(flags cli.Flags) error {
	seed, err := a.generator.Generate()
	if err != nil {
		return xerrors.Errorf("failed to generate seed: %v", err)
	}

	path := flags.Path("save")
	if path == "" {
		fmt.Fprintln(a.printer, string(seed))
		return nil
	}

	err = a.newLoader(path).Save(seed, flags.Bool("force"))
	if err != nil {
		return xerrors.Errorf("failed to save seed: %v", err)
	}

	fmt.Fprintf(a.printer, "seed saved to %s\n", path)

	return nil
}

func (a action) addressAction(flags cli.Flags) error {
	cfg, err := loadConfig(flags, a.readFile)
	if err != nil {
		return err
	}

	seeds, err := a.seeds(flags)
	if err != nil {
		return err
	}

	if len(seeds) != 1 {
		return xerrors.Errorf("expected one seed but got %d", len(seeds))
	}

	spec, err := a.parser.Parse(seeds[0])
	if err != nil {
		return xerrors.Errorf("invalid seed: %v", err)
	}

	publicKey, err := spec.(signing.Single).Signer.GetPublicKey().MarshalBinary()
	if err != nil {
		return xerrors.Errorf("failed to marshal public key: %v", err)
	}

	fmt.Fprintf(a.printer, "public key: %s\n", txn.Base58(publicKey))
	fmt.Fprintf(a.printer, "address: %s\n", crypto.NewAddress(publicKey, cfg.chainID()))

	return nil
}
