package logger

import (
	"io"
	"log/slog"
	"os"
)

// NewConsoleLogger creates a logger writing slog text records to stderr,
// keeping stdout free for command output.
func NewConsoleLogger(level string) Logger {
	return newTextLogger(os.Stderr, level)
}

func newTextLogger(w io.Writer, level string) Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &slogLogger{logger: slog.New(handler)}
}
