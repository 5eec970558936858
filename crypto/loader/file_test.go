package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ltonetwork/lto/testing/fake"
	"github.com/stretchr/testify/require"
)

func TestFileLoader_LoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed")

	generator := fakeGenerator{
		calls: &fake.Call{},
	}

	loader := NewFileLoader(path).(fileLoader)

	// Generate..
	data, err := loader.LoadOrCreate(generator)
	require.NoError(t, err)
	require.Equal(t, []byte("seed phrase"), data)
	require.Equal(t, 1, generator.calls.Len())

	// Read from the file..
	data, err = loader.LoadOrCreate(generator)
	require.NoError(t, err)
	require.Equal(t, []byte("seed phrase"), data)
	require.Equal(t, 1, generator.calls.Len())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0400), info.Mode().Perm())
}

func TestFileLoader_LoadOrCreate_Trim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed")
	require.NoError(t, os.WriteFile(path, []byte("  manual seed\n"), 0600))

	data, err := NewFileLoader(path).LoadOrCreate(fakeGenerator{})
	require.NoError(t, err)
	require.Equal(t, []byte("manual seed"), data)
}

func TestFileLoader_LoadOrCreate_Failures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed")

	loader := NewFileLoader(path).(fileLoader)

	_, err := loader.LoadOrCreate(fakeGenerator{err: fake.GetError()})
	require.EqualError(t, err, fake.Err("generator failed"))

	loader.openFileFn = func(path string, flags int, perms os.FileMode) (*os.File, error) {
		return nil, fake.GetError()
	}
	_, err = loader.LoadOrCreate(fakeGenerator{})
	require.EqualError(t, err, fake.Err("while creating file"))

	loader.statFn = func(path string) (os.FileInfo, error) {
		return nil, nil
	}
	loader.openFn = func(path string) (*os.File, error) {
		return nil, fake.GetError()
	}
	_, err = loader.LoadOrCreate(fakeGenerator{})
	require.EqualError(t, err, fake.Err("failed to load file: while opening file"))

	loader.openFn = func(path string) (*os.File, error) {
		return os.Open(os.TempDir())
	}
	_, err = loader.LoadOrCreate(fakeGenerator{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load file: while reading file: ")
}

func TestFileLoader_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed")

	loader := NewFileLoader(path)

	err := loader.Save([]byte("first"), false)
	require.NoError(t, err)

	err = loader.Save([]byte("second"), false)
	require.EqualError(t, err, "file '"+path+"' already exists, use --force "+
		"if you want to overwrite")

	err = loader.Save([]byte("second"), true)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	err = NewFileLoader(filepath.Join(path, "nested")).Save(nil, true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "while creating file: ")
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeGenerator struct {
	calls *fake.Call
	err   error
}

func (g fakeGenerator) Generate() ([]byte, error) {
	g.calls.Add("Generate")

	return []byte("seed phrase"), g.err
}
