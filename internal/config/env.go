package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Env holds process-environment configuration. Credentials stay in the
// environment; everything else has a usable default.
type Env struct {
	// Provider credentials. Google uses Application Default Credentials,
	// so only the OpenAI key is read directly.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	// Synthesis defaults, overridable per run via flags.
	Language string `env:"AUDIOBOOK_LANGUAGE, default=pt-BR"`
	Gender   string `env:"AUDIOBOOK_GENDER, default=FEMALE"`

	// Segmentation and scheduling.
	MaxChunkBytes int `env:"AUDIOBOOK_MAX_CHUNK_BYTES, default=3500"`
	Parallel      int `env:"AUDIOBOOK_PARALLEL, default=4"`

	// Logging.
	LogLevel  string `env:"AUDIOBOOK_LOG_LEVEL, default=info"`
	LogFormat string `env:"AUDIOBOOK_LOG_FORMAT, default=text"` // "text" or "json"
}

// LoadEnv reads environment configuration.
func LoadEnv(ctx context.Context) (*Env, error) {
	cfg := &Env{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("load environment config: %w", err)
	}
	return cfg, nil
}

// NewLogger creates a structured logger writing to w, honoring the
// configured level and format.
func (e *Env) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(e.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(e.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
