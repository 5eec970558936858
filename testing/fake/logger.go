package fake

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// CheckLog returns a logger and a check function. When called, the function
// will verify if the logger has seen the message printed.
func CheckLog(msg string) (zerolog.Logger, func(t *testing.T)) {
	buffer := new(bytes.Buffer)

	check := func(t *testing.T) {
		require.Contains(t, buffer.String(), fmt.Sprintf(`"%s"`, msg))
	}

	return zerolog.New(buffer), check
}

// CheckLogField returns a logger and a check function that verifies a field
// was logged with the given value.
func CheckLogField(key string, value interface{}) (zerolog.Logger, func(t *testing.T)) {
	buffer := new(bytes.Buffer)

	check := func(t *testing.T) {
		require.Contains(t, buffer.String(), fmt.Sprintf(`"%s":%v`, key, value))
	}

	return zerolog.New(buffer), check
}
