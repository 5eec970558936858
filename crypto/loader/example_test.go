package loader

import (
	"fmt"
	"os"
	"path/filepath"
)

func ExampleLoader_LoadOrCreate() {
	dir, err := os.MkdirTemp(os.TempDir(), "example")
	if err != nil {
		panic("no folder: " + err.Error())
	}

	defer os.RemoveAll(dir)

	loader := NewFileLoader(filepath.Join(dir, "seed"))

	data, err := loader.LoadOrCreate(exampleGenerator{})
	if err != nil {
		panic("loading seed failed: " + err.Error())
	}

	fmt.Println(string(data))

	// Output: my secret seed phrase
}

type exampleGenerator struct{}

func (exampleGenerator) Generate() ([]byte, error) {
	return []byte("my secret seed phrase"), nil
}
