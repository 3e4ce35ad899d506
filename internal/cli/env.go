package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-audiobook/internal/config"
	"github.com/alnah/go-audiobook/internal/ffmpeg"
	"github.com/alnah/go-audiobook/internal/pipeline"
	"github.com/alnah/go-audiobook/internal/tts"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Factories for domain objects
	FFmpegResolver     FFmpegResolver
	ConfigLoader       ConfigLoader
	SynthesizerFactory SynthesizerFactory
	EncoderFactory     EncoderFactory
}

// FFmpegResolver resolves the path to the FFmpeg binary.
type FFmpegResolver interface {
	Resolve() (string, error)
	CheckVersion(ctx context.Context, ffmpegPath string) (string, error)
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// SynthesizerFactory creates speech synthesizers per provider.
type SynthesizerFactory interface {
	NewGoogle(ctx context.Context) (tts.Synthesizer, error)
	NewOpenAI(apiKey string) tts.Synthesizer
}

// EncoderFactory creates MP3 encoders bound to an FFmpeg binary.
type EncoderFactory interface {
	NewEncoder(ffmpegPath string) pipeline.Encoder
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithFFmpegResolver sets the FFmpeg resolver.
func WithFFmpegResolver(r FFmpegResolver) EnvOption {
	return func(e *Env) {
		e.FFmpegResolver = r
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithSynthesizerFactory sets the synthesizer factory.
func WithSynthesizerFactory(f SynthesizerFactory) EnvOption {
	return func(e *Env) {
		e.SynthesizerFactory = f
	}
}

// WithEncoderFactory sets the encoder factory.
func WithEncoderFactory(f EncoderFactory) EnvOption {
	return func(e *Env) {
		e.EncoderFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stderr:             os.Stderr,
		Getenv:             os.Getenv,
		Now:                time.Now,
		FFmpegResolver:     &defaultFFmpegResolver{},
		ConfigLoader:       &defaultConfigLoader{},
		SynthesizerFactory: &defaultSynthesizerFactory{},
		EncoderFactory:     &defaultEncoderFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultFFmpegResolver implements FFmpegResolver using the ffmpeg package.
type defaultFFmpegResolver struct{}

func (defaultFFmpegResolver) Resolve() (string, error) {
	return ffmpeg.Resolve()
}

func (defaultFFmpegResolver) CheckVersion(ctx context.Context, ffmpegPath string) (string, error) {
	return ffmpeg.CheckVersion(ctx, ffmpegPath)
}

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultSynthesizerFactory implements SynthesizerFactory with the real
// provider clients.
type defaultSynthesizerFactory struct{}

func (defaultSynthesizerFactory) NewGoogle(ctx context.Context) (tts.Synthesizer, error) {
	return tts.NewGoogleSynthesizer(ctx)
}

func (defaultSynthesizerFactory) NewOpenAI(apiKey string) tts.Synthesizer {
	return tts.NewOpenAISynthesizer(apiKey)
}

// defaultEncoderFactory implements EncoderFactory using the ffmpeg package.
type defaultEncoderFactory struct{}

func (defaultEncoderFactory) NewEncoder(ffmpegPath string) pipeline.Encoder {
	return ffmpeg.NewMP3Encoder(ffmpegPath)
}

// Compile-time interface verification.
var (
	_ FFmpegResolver     = (*defaultFFmpegResolver)(nil)
	_ ConfigLoader       = (*defaultConfigLoader)(nil)
	_ SynthesizerFactory = (*defaultSynthesizerFactory)(nil)
	_ EncoderFactory     = (*defaultEncoderFactory)(nil)
)
