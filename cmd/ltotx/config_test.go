package main

import (
	"testing"

	"github.com/ltonetwork/lto/testing/fake"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(fake.Flags{}, nil)
	require.NoError(t, err)
	require.Equal(t, defaultNode, cfg.Node)
	require.Equal(t, defaultMatcher, cfg.Matcher)
	require.Equal(t, byte('L'), cfg.chainID())
	require.Empty(t, cfg.Store)

	readFile := func(string) ([]byte, error) {
		return []byte("node: http://localhost:6869\nchainId: T\nstore: pending.db\n"), nil
	}

	cfg, err = loadConfig(fake.Flags{"config": "ltotx.yml"}, readFile)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:6869", cfg.Node)
	require.Equal(t, defaultMatcher, cfg.Matcher)
	require.Equal(t, byte('T'), cfg.chainID())
	require.Equal(t, "pending.db", cfg.Store)

	flags := fake.Flags{
		"config":  "ltotx.yml",
		"node":    "http://node",
		"matcher": "http://matcher",
		"chain":   "L",
		"store":   "other.db",
	}

	cfg, err = loadConfig(flags, readFile)
	require.NoError(t, err)
	require.Equal(t, config{
		Node:    "http://node",
		Matcher: "http://matcher",
		ChainID: "L",
		Store:   "other.db",
	}, cfg)
}

func TestLoadConfig_Failures(t *testing.T) {
	_, err := loadConfig(fake.Flags{"config": "ltotx.yml"}, badReadFile)
	require.EqualError(t, err, fake.Err("failed to read config"))

	readFile := func(string) ([]byte, error) {
		return []byte("nodes: http://localhost:6869\n"), nil
	}

	_, err = loadConfig(fake.Flags{"config": "ltotx.yml"}, readFile)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config: ")

	_, err = loadConfig(fake.Flags{"chain": "LT"}, nil)
	require.EqualError(t, err, "invalid chain id 'LT'")
}

// -----------------------------------------------------------------------------
// Utility functions

func badReadFile(string) ([]byte, error) {
	return nil, fake.GetError()
}
