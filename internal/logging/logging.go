// Package logging configures the process-wide slog logger. Output
// goes to stderr: stdout belongs to CLI JSON output and, in server
// mode, to the MCP stdio transport.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Init installs the default logger.
func Init(level slog.Level) {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})

	slog.SetDefault(slog.New(handler))
}
