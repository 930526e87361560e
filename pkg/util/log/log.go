// Package log holds the process-wide logger. Components receive it as a
// constructor argument; the global exists for the few places with no
// injection path, like the kafka client hooks.
package log

import (
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	dslog "github.com/grafana/dskit/log"
)

// Logger is a nop until InitLogger runs, so packages can log safely during
// early startup.
var Logger = kitlog.NewNopLogger()

// InitLogger builds the global logger from the configured format and level
// and installs it.
func InitLogger(logFormat string, logLevel dslog.Level) kitlog.Logger {
	writer := kitlog.NewSyncWriter(os.Stderr)
	logger := dslog.NewGoKitWithWriter(logFormat, writer)

	// caller depth accounts for the go-kit level and filter wrappers
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.Caller(5))

	// filtering last, so discarded records pay no formatting cost
	logger = level.NewFilter(logger, logLevel.Option)

	Logger = logger
	return logger
}
