package logger

import (
	"io"
	"log/slog"
	"os"
)

func New(env string) *slog.Logger {
	var h slog.Handler
	switch env {
	case "prod":
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	case "test":
		h = slog.NewTextHandler(io.Discard, nil)
	default:
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h)
}
