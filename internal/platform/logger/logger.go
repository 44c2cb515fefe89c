package logger

import (
	"log/slog"
	"os"
)

// New returns the root structured logger. Services receive children of this
// logger via options; none of them may ever log queried domain names or raw
// WHOIS response text.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
