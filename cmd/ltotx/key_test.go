package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ltonetwork/lto/core/txn"
	"github.com/ltonetwork/lto/crypto"
	"github.com/ltonetwork/lto/crypto/ed25519"
	"github.com/ltonetwork/lto/testing/fake"
	"github.com/stretchr/testify/require"
)

func TestAction_NewKey(t *testing.T) {
	buf := new(bytes.Buffer)
	a := newTestAction(buf)

	err := a.newKeyAction(fake.Flags{})
	require.NoError(t, err)
	require.NotEmpty(t, strings.TrimSpace(buf.String()))

	buf.Reset()
	path := filepath.Join(t.TempDir(), "seed")

	err = a.newKeyAction(fake.Flags{"save": path})
	require.NoError(t, err)
	require.Equal(t, "seed saved to "+path+"\n", buf.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	err = a.newKeyAction(fake.Flags{"save": path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to save seed: file '"+path+"' already exists")

	err = a.newKeyAction(fake.Flags{"save": path, "force": true})
	require.NoError(t, err)

	a.generator = badGenerator{}
	err = a.newKeyAction(fake.Flags{})
	require.EqualError(t, err, fake.Err("failed to generate seed"))
}

func TestAction_Address(t *testing.T) {
	buf := new(bytes.Buffer)
	a := newTestAction(buf)

	err := a.addressAction(fake.Flags{"seed": []string{"alice"}, "chain": "T"})
	require.NoError(t, err)

	publicKey, err := ed25519.NewSignerFromSeed("alice").GetPublicKey().MarshalBinary()
	require.NoError(t, err)

	expected := "public key: " + txn.Base58(publicKey).String() + "\n" +
		"address: " + crypto.NewAddress(publicKey, 'T').String() + "\n"

	require.Equal(t, expected, buf.String())

	err = a.addressAction(fake.Flags{})
	require.EqualError(t, err, "expected one seed but got 0")

	err = a.addressAction(fake.Flags{"chain": "LT"})
	require.EqualError(t, err, "invalid chain id 'LT'")

	err = a.addressAction(fake.Flags{"keyfile": filepath.Join(t.TempDir(), "none", "seed")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load key file: ")
}
