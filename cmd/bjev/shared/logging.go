package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// SetupLogger returns a stderr logger at info level, or debug when asked.
func SetupLogger(debug bool) *log.Logger {
	return NewLogger(os.Stderr, debug)
}

// NewLogger builds the CLI's logger on w.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// DisableColor strips ANSI styling from rendered output and log lines.
func DisableColor(logger *log.Logger) {
	lipgloss.SetColorProfile(termenv.Ascii)
	logger.SetColorProfile(termenv.Ascii)
}
