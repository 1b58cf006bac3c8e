package config

import (
	"io"
	"log/slog"

	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogzerolog "github.com/samber/slog-zerolog/v2"
	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/eventstore/oteladapters"
)

// SlogLevel maps LogLevel to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogHandler returns the slog handler selected by LogFormat, writing to out.
func (c Config) NewLogHandler(out io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}

	switch c.LogFormat {
	case "text":
		return slog.NewTextHandler(out, opts)
	case "zerolog":
		logger := zerolog.New(out).With().Timestamp().Logger()
		return slogzerolog.Option{Level: c.SlogLevel(), Logger: &logger}.NewZerologHandler()
	default:
		return slog.NewJSONHandler(out, opts)
	}
}

// NewContextualLogger returns the logger for the event store and the command wrappers.
// With OpenTelemetry enabled, records also go to the OTel log bridge, carrying trace and span ids.
func (c Config) NewContextualLogger(handler slog.Handler) eventstore.ContextualLogger {
	if c.OTelEnabled {
		return oteladapters.NewSlogBridgeLoggerWithHandler(slogmulti.Fanout(handler, otelslog.NewHandler(c.ServiceName)))
	}

	return oteladapters.NewSlogBridgeLoggerWithHandler(handler)
}
