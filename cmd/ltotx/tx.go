package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"

	"github.com/ltonetwork/lto"
	"github.com/ltonetwork/lto/cli"
	"github.com/ltonetwork/lto/core/txn"
	txbuilder "github.com/ltonetwork/lto/core/txn/builder"
	"github.com/ltonetwork/lto/core/txn/pending"
	"golang.org/x/xerrors"
)

func (a action) buildAction(flags cli.Flags) error {
	cfg, err := loadConfig(flags, a.readFile)
	if err != nil {
		return err
	}

	kind, found := txn.KindByName(flags.String("kind"))
	if !found {
		return xerrors.Errorf("unknown kind '%s'", flags.String("kind"))
	}

	version := flags.Int("version")
	if version < 0 || version > math.MaxUint8 {
		return xerrors.Errorf("invalid version %d, expected 0 to %d", version, math.MaxUint8)
	}

	body, err := a.decodeBody(kind, flags.StringSlice("param"), cfg.chainID())
	if err != nil {
		return err
	}

	seeds, err := a.seeds(flags)
	if err != nil {
		return err
	}

	spec, err := a.signingSpec(seeds)
	if err != nil {
		return xerrors.Errorf("invalid seeds: %v", err)
	}

	header := txbuilder.Header{
		Version:       byte(version),
		Fee:           flags.Uint64("fee"),
		AdditionalFee: flags.Uint64("additional-fee"),
		Timestamp:     flags.Int64("timestamp"),
	}

	var in txbuilder.Input = txbuilder.Fresh{Header: header, Body: body}

	sender := flags.String("sender")
	if sender != "" {
		key, err := txn.ParseBase58(sender)
		if err != nil {
			return xerrors.Errorf("invalid sender: %v", err)
		}

		in = txbuilder.Completion{Header: header, SenderPublicKey: key, Body: body}
	}

	tx, err := a.builder.Build(in, spec)
	if err != nil {
		return xerrors.Errorf("failed to build transaction: %v", err)
	}

	if cfg.Store != "" {
		err = a.withStore(cfg, func(store *pending.Store) error {
			_, err := store.Save(tx)
			return err
		})
		if err != nil {
			return xerrors.Errorf("failed to save transaction: %v", err)
		}
	}

	return a.output(flags, tx)
}

func (a action) signAction(flags cli.Flags) error {
	cfg, err := loadConfig(flags, a.readFile)
	if err != nil {
		return err
	}

	tx, err := a.loadTransaction(flags, cfg)
	if err != nil {
		return err
	}

	seeds, err := a.seeds(flags)
	if err != nil {
		return err
	}

	spec, err := a.signingSpec(seeds)
	if err != nil {
		return xerrors.Errorf("invalid seeds: %v", err)
	}

	tx, err = a.builder.Build(txbuilder.Complete(tx), spec)
	if err != nil {
		return xerrors.Errorf("failed to sign transaction: %v", err)
	}

	if cfg.Store != "" {
		err = a.withStore(cfg, func(store *pending.Store) error {
			tx, err = store.Save(tx)
			return err
		})
		if err != nil {
			return xerrors.Errorf("failed to save transaction: %v", err)
		}
	}

	return a.output(flags, tx)
}

func (a action) broadcastAction(flags cli.Flags) error {
	cfg, err := loadConfig(flags, a.readFile)
	if err != nil {
		return err
	}

	tx, err := a.loadTransaction(flags, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	switch tx.Type {
	case txn.TypeOrder:
		resp, err := a.newMatcher(cfg.Matcher).SubmitOrder(ctx, tx)
		if err != nil {
			return xerrors.Errorf("failed to submit order: %v", err)
		}

		err = a.printResponse(resp)
		if err != nil {
			return err
		}
	case txn.TypeCancelOrder:
		amountAsset, err := txn.ParseBase58(flags.String("amount-asset"))
		if err != nil {
			return xerrors.Errorf("invalid amount asset: %v", err)
		}

		priceAsset, err := txn.ParseBase58(flags.String("price-asset"))
		if err != nil {
			return xerrors.Errorf("invalid price asset: %v", err)
		}

		resp, err := a.newMatcher(cfg.Matcher).CancelOrder(ctx, tx, amountAsset, priceAsset)
		if err != nil {
			return xerrors.Errorf("failed to cancel order: %v", err)
		}

		err = a.printResponse(resp)
		if err != nil {
			return err
		}
	default:
		client := a.newNode(cfg.Node)

		result, err := client.Broadcast(ctx, tx)
		if err != nil {
			return xerrors.Errorf("failed to broadcast: %v", err)
		}

		lto.Logger.Info().Str("id", result.ID).Msg("transaction broadcast")

		wait := flags.Duration("wait")
		if wait > 0 {
			result, err = client.WaitForTransaction(ctx, result.ID, wait)
			if err != nil {
				return xerrors.Errorf("failed to wait: %v", err)
			}
		}

		err = a.output(flags, result)
		if err != nil {
			return err
		}
	}

	// The transaction is no longer pending once the network accepted it.
	if flags.String("id") != "" {
		err = a.withStore(cfg, func(store *pending.Store) error {
			return store.Delete(tx.ID)
		})
		if err != nil {
			return xerrors.Errorf("failed to clean store: %v", err)
		}
	}

	return nil
}

func (a action) listAction(flags cli.Flags) error {
	cfg, err := loadConfig(flags, a.readFile)
	if err != nil {
		return err
	}

	return a.withStore(cfg, func(store *pending.Store) error {
		ids, err := store.List(flags.String("prefix"))
		if err != nil {
			return xerrors.Errorf("failed to list: %v", err)
		}

		for _, id := range ids {
			fmt.Fprintln(a.printer, id)
		}

		return nil
	})
}

// loadTransaction reads the transaction either from the file of the flag "in"
// or from the pending store with the identifier of the flag "id".
func (a action) loadTransaction(flags cli.Flags, cfg config) (*txn.Transaction, error) {
	path := flags.Path("in")
	if path != "" {
		tx, err := a.readTransaction(path)
		if err != nil {
			return nil, xerrors.Errorf("failed to read transaction: %v", err)
		}

		return tx, nil
	}

	id := flags.String("id")
	if id == "" {
		return nil, xerrors.New("missing transaction, use --in or --id")
	}

	var tx *txn.Transaction

	err := a.withStore(cfg, func(store *pending.Store) error {
		var err error
		tx, err = store.Load(id)
		return err
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to load transaction: %v", err)
	}

	return tx, nil
}

func (a action) printResponse(resp interface{}) error {
	data, err := a.context.Marshal(resp)
	if err != nil {
		return xerrors.Errorf("failed to marshal response: %v", err)
	}

	_, err = a.printer.Write(append(data, '\n'))
	if err != nil {
		return xerrors.Errorf("failed to print: %v", err)
	}

	return nil
}
