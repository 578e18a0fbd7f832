package app

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// newLogger builds the diagnostics logger. Diagnostics go to stderr so
// stdout stays clean for tables, JSON and init scripts.
func newLogger(w io.Writer, level string, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          appName,
		ReportTimestamp: false,
	})
	lvl, err := log.ParseLevel(strings.TrimSpace(strings.ToLower(level)))
	if err != nil {
		lvl = log.WarnLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger
}
