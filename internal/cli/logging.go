package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/partialepoch/epochdb/pkg/models"
)

// ParseLogLevel maps debug, info, warn and error to slog levels
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return 0, fmt.Errorf("invalid log level: %s (must be: debug, info, warn, or error)", level)
	}
	return l, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogging installs the default slog logger. Logs go to the configured
// file when there is one. Otherwise the TUI discards them, since it owns
// the terminal, and subcommands write them to stderr.
func SetupLogging(settings models.LogSettings, stderr io.Writer, tui bool) (io.Closer, error) {
	level, err := ParseLogLevel(settings.Level)
	if err != nil {
		return nil, err
	}

	var (
		out    io.Writer = stderr
		closer io.Closer = nopCloser{}
	)

	switch {
	case settings.File != "":
		f, err := os.OpenFile(settings.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", settings.File, err)
		}
		out, closer = f, f
	case tui:
		out = io.Discard
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return closer, nil
}
