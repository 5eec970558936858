// Package lto defines the global logger and metrics collectors shared by the
// packages of the module.
package lto

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// EnvLogLevel is the name of the environment variable to change the logging
// level.
const EnvLogLevel = "LLVL"

const defaultLevel = zerolog.DebugLevel

func init() {
	lvl := os.Getenv(EnvLogLevel)

	var level zerolog.Level

	switch lvl {
	case "error":
		level = zerolog.ErrorLevel
	case "warn":
		level = zerolog.WarnLevel
	case "info":
		level = zerolog.InfoLevel
	case "debug":
		level = zerolog.DebugLevel
	case "trace":
		level = zerolog.TraceLevel
	case "":
		level = defaultLevel
	default:
		level = zerolog.TraceLevel
	}

	Logger = Logger.Level(level)
}

var logout = zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
}

// Logger is a globally available logger instance. By default, it only prints
// debug level messages but it can be changed through a environment variable.
var Logger = zerolog.New(logout).
	With().Timestamp().Logger().
	With().Caller().Logger()

// PromCollectors exposes Prometheus collectors created in the packages of the
// module. An application can register them on its own registry.
var PromCollectors []prometheus.Collector
