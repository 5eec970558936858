package main

import (
	"github.com/ltonetwork/lto/cli"
	"github.com/ltonetwork/lto/core/txn"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

const (
	defaultNode    = "https://nodes.lto.network"
	defaultMatcher = "https://matcher.lto.network"
)

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML file with the default values of the global flags",
	},
	cli.StringFlag{
		Name:  "node",
		Usage: "URL of the node API",
	},
	cli.StringFlag{
		Name:  "matcher",
		Usage: "URL of the matcher API",
	},
	cli.StringFlag{
		Name:  "chain",
		Usage: "chain identifier, 'L' for the mainnet and 'T' for the testnet",
	},
	cli.StringFlag{
		Name:  "store",
		Usage: "path to the database of the pending transactions",
	},
}

// config is the content of the configuration file. The flags take precedence
// over the values of the file.
type config struct {
	Node    string `yaml:"node"`
	Matcher string `yaml:"matcher"`
	ChainID string `yaml:"chainId"`
	Store   string `yaml:"store"`
}

func loadConfig(flags cli.Flags, readFile func(string) ([]byte, error)) (config, error) {
	cfg := config{
		Node:    defaultNode,
		Matcher: defaultMatcher,
		ChainID: string(txn.DefaultChainID),
	}

	path := flags.Path("config")
	if path != "" {
		data, err := readFile(path)
		if err != nil {
			return cfg, xerrors.Errorf("failed to read config: %v", err)
		}

		err = yaml.UnmarshalStrict(data, &cfg)
		if err != nil {
			return cfg, xerrors.Errorf("failed to parse config: %v", err)
		}
	}

	override(&cfg.Node, flags.String("node"))
	override(&cfg.Matcher, flags.String("matcher"))
	override(&cfg.ChainID, flags.String("chain"))
	override(&cfg.Store, flags.Path("store"))

	if len(cfg.ChainID) != 1 {
		return cfg, xerrors.Errorf("invalid chain id '%s'", cfg.ChainID)
	}

	return cfg, nil
}

func (c config) chainID() byte {
	return c.ChainID[0]
}

func override(value *string, flag string) {
	if flag != "" {
		*value = flag
	}
}
