package ffmpeg

import (
	"context"
	"fmt"
	"time"
)

// Encoding defaults for audiobook output.
const (
	DefaultBitrate         = "128k"
	DefaultShutdownTimeout = 10 * time.Second
)

// MP3Encoder converts WAV files to MP3 through FFmpeg.
type MP3Encoder struct {
	path    string
	bitrate string
	timeout time.Duration

	// run is injectable for testing; defaults to RunGraceful.
	run func(ctx context.Context, ffmpegPath string, args []string, timeout time.Duration) error
}

// MP3Option configures an MP3Encoder.
type MP3Option func(*MP3Encoder)

// WithBitrate sets the MP3 bitrate (e.g. "128k").
func WithBitrate(bitrate string) MP3Option {
	return func(e *MP3Encoder) { e.bitrate = bitrate }
}

// WithRun sets a custom run function (for testing).
func WithRun(run func(ctx context.Context, ffmpegPath string, args []string, timeout time.Duration) error) MP3Option {
	return func(e *MP3Encoder) { e.run = run }
}

// NewMP3Encoder creates an encoder using the FFmpeg binary at path.
func NewMP3Encoder(path string, opts ...MP3Option) *MP3Encoder {
	e := &MP3Encoder{
		path:    path,
		bitrate: DefaultBitrate,
		timeout: DefaultShutdownTimeout,
		run:     RunGraceful,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode converts wavPath to an MP3 at mp3Path, overwriting any existing
// file.
func (e *MP3Encoder) Encode(ctx context.Context, wavPath, mp3Path string) error {
	args := []string{
		"-y",
		"-i", wavPath,
		"-codec:a", "libmp3lame",
		"-b:a", e.bitrate,
		mp3Path,
	}
	if err := e.run(ctx, e.path, args, e.timeout); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return nil
}
