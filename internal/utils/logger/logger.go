package logger

import (
	"os"

	"golang.org/x/exp/slog"

	"formular230/internal/app/server/config"
)

// New возвращает логгер в зависимости от окружения.
// level (debug, info, warn, error) переопределяет уровень окружения, пустой - не трогает.
func New(env, level string) *slog.Logger {
	lvl := defaultLevel(env)
	if level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(level)); err == nil {
			lvl = parsed
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if env == config.EnvLocal {
		return setupPrettySlog(opts)
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func defaultLevel(env string) slog.Level {
	switch env {
	case config.EnvLocal, config.EnvDev:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func setupPrettySlog(opts *slog.HandlerOptions) *slog.Logger {
	pretty := PrettyHandlerOptions{SlogOpts: opts}
	return slog.New(pretty.NewPrettyHandler(os.Stdout))
}

// Discard - логгер для тестов
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}
