package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/ltonetwork/lto"
	"github.com/ltonetwork/lto/cli"
	"github.com/ltonetwork/lto/client/matcher"
	"github.com/ltonetwork/lto/client/node"
	"github.com/ltonetwork/lto/core/store/kv"
	"github.com/ltonetwork/lto/core/txn"
	txbuilder "github.com/ltonetwork/lto/core/txn/builder"
	"github.com/ltonetwork/lto/core/txn/pending"
	"github.com/ltonetwork/lto/core/txn/signing"
	"github.com/ltonetwork/lto/crypto/loader"
	"github.com/ltonetwork/lto/serde"
	"github.com/ltonetwork/lto/serde/json"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// absentSeed is the marker of a slot signed by another party.
const absentSeed = "-"

var slotSeed = regexp.MustCompile(`^(\d+):(.+)$`)

type nodeClient interface {
	Broadcast(ctx context.Context, tx *txn.Transaction) (*txn.Transaction, error)
	WaitForTransaction(ctx context.Context, id string, timeout time.Duration) (*txn.Transaction, error)
}

type matcherClient interface {
	SubmitOrder(ctx context.Context, order *txn.Transaction) (matcher.Response, error)
	CancelOrder(ctx context.Context, cancel *txn.Transaction, amountAsset, priceAsset txn.Base58) (matcher.Response, error)
}

// action defines the actions of the commands. The dependencies are functions
// and interfaces so that the commands can be tested without a network or a
// file system.
type action struct {
	printer io.Writer

	readFile  func(path string) ([]byte, error)
	writeFile func(path string, data []byte) error
	newLoader func(path string) loader.Loader
	generator loader.Generator
	openDB    func(path string) (kv.DB, error)

	newNode    func(url string) nodeClient
	newMatcher func(url string) matcherClient

	parser  signing.Parser
	builder txbuilder.Builder
	context serde.Context
	factory txn.TransactionFactory
}

func newAction(printer io.Writer) action {
	return action{
		printer:   printer,
		readFile:  os.ReadFile,
		writeFile: writeFile,
		newLoader: loader.NewFileLoader,
		generator: loader.NewSeedGenerator(),
		openDB:    kv.Open,
		newNode: func(url string) nodeClient {
			return node.NewClient(url)
		},
		newMatcher: func(url string) matcherClient {
			return matcher.NewClient(url)
		},
		parser:  signing.NewParser(),
		builder: txbuilder.NewBuilder(),
		context: json.NewContext(),
		factory: txn.NewTransactionFactory(),
	}
}

// seeds returns the seed phrases of the flags. The seed of the key file, if
// any, comes first.
func (a action) seeds(flags cli.Flags) ([]string, error) {
	seeds := flags.StringSlice("seed")

	path := flags.Path("keyfile")
	if path == "" {
		return seeds, nil
	}

	seed, err := a.newLoader(path).LoadOrCreate(a.generator)
	if err != nil {
		return nil, xerrors.Errorf("failed to load key file: %v", err)
	}

	return append([]string{string(seed)}, seeds...), nil
}

// signingSpec returns the signing keys of the seeds. A seed prefixed by
// "<slot>:" signs that slot, otherwise the slot is the position of the seed,
// and "-" leaves the slot to another party.
func (a action) signingSpec(seeds []string) (signing.Spec, error) {
	explicit := false
	for _, seed := range seeds {
		if slotSeed.MatchString(seed) {
			explicit = true
		}
	}

	if !explicit {
		list := make([]string, len(seeds))
		for i, seed := range seeds {
			if seed != absentSeed {
				list[i] = seed
			}
		}

		return a.parser.Parse(list)
	}

	pairs := []signing.Pair{}

	for i, seed := range seeds {
		if seed == absentSeed {
			continue
		}

		index := i

		match := slotSeed.FindStringSubmatch(seed)
		if match != nil {
			// The pattern only matches digits.
			index, _ = strconv.Atoi(match[1])
			seed = match[2]
		}

		spec, err := a.parser.Parse(seed)
		if err != nil {
			return nil, xerrors.Errorf("seed %d: %v", i, err)
		}

		pairs = append(pairs, signing.Pair{
			Signer: spec.(signing.Single).Signer,
			Index:  index,
		})
	}

	return a.parser.Parse(pairs)
}

func (a action) readTransaction(path string) (*txn.Transaction, error) {
	data, err := a.readFile(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read file: %v", err)
	}

	tx, err := a.factory.TransactionOf(a.context, data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode: %v", err)
	}

	return tx, nil
}

// withStore opens the pending store of the configuration for the duration of
// the function.
func (a action) withStore(cfg config, fn func(*pending.Store) error) error {
	if cfg.Store == "" {
		return xerrors.New("missing store, use --store")
	}

	db, err := a.openDB(cfg.Store)
	if err != nil {
		return xerrors.Errorf("failed to open store: %v", err)
	}

	defer db.Close()

	store := pending.NewStore(db)
	store.Watch(logObserver{logger: lto.Logger})

	return fn(store)
}

// logObserver reports the changes of the pending store.
//
// - implements pending.Observer
type logObserver struct {
	logger zerolog.Logger
}

// NotifyCallback implements pending.Observer.
func (o logObserver) NotifyCallback(event pending.Event) {
	if event.Deleted {
		o.logger.Info().Str("id", event.ID).Msg("pending transaction removed")
		return
	}

	o.logger.Info().
		Str("id", event.ID).
		Int("signed", event.Signed).
		Msg("pending transaction saved")
}

// output prints the transaction, and writes it in the file of the flag "out"
// if it is set.
func (a action) output(flags cli.Flags, v serde.Message) error {
	data, err := a.context.Encode(v)
	if err != nil {
		return xerrors.Errorf("failed to serialize: %v", err)
	}

	path := flags.Path("out")
	if path != "" {
		err = a.writeFile(path, data)
		if err != nil {
			return xerrors.Errorf("failed to write file: %v", err)
		}
	}

	fmt.Fprintln(a.printer, string(data))

	return nil
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0600)
}
