package app

import (
	"io"
	"log/slog"
)

// newLogger builds the logger of one App. Records go to w, never to the
// result stream. A level slog cannot parse falls back to warn, the CLI
// default, which reports compilation failures and rejected jobs only.
func newLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
