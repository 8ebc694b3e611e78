// Package logging configures slog for vv and logs each command run.
package logging

import (
	"io"
	"log/slog"
)

// Setup installs the default slog logger on w, normally stderr so
// command output on stdout stays clean.
//
// Dev mode logs text at debug with source locations. Otherwise only
// warnings and errors are logged, as JSON.
func Setup(w io.Writer, devMode bool) {
	slog.SetDefault(slog.New(newHandler(w, devMode)))
}

func newHandler(w io.Writer, devMode bool) slog.Handler {
	if devMode {
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn})
}
