package service

import (
	"log/slog"
	"os"

	"go.uber.org/fx"
)

var loggerWriter = os.Stdout

func logger() *slog.Logger {
	l := slog.New(slog.NewJSONHandler(loggerWriter, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
	}))
	slog.SetDefault(l)
	return l
}

var LoggerModule = fx.Module("logger", fx.Provide(
	logger,
))
