// Package testhelpers holds the logging setup shared by tests and the
// operational check binaries.
package testhelpers

import (
	"io"
	"log/slog"

	"github.com/mtoivan/samplab/internal/logging"
)

// NewLogger builds the application's context-aware logger writing to the
// given sink, usually io.Discard in tests or os.Stdout in check binaries.
func NewLogger(logSink io.Writer) *slog.Logger {
	return slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}
