package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alnah/go-audiobook/internal/apierr"
	"github.com/alnah/go-audiobook/internal/audio"
	"github.com/alnah/go-audiobook/internal/cli"
	"github.com/alnah/go-audiobook/internal/extract"
	"github.com/alnah/go-audiobook/internal/ffmpeg"
	"github.com/alnah/go-audiobook/internal/lang"
	"github.com/alnah/go-audiobook/internal/tts"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"generic", errors.New("boom"), ExitGeneral},
		{"interrupt", context.Canceled, ExitInterrupt},
		{"wrapped interrupt", fmt.Errorf("run: %w", context.Canceled), ExitInterrupt},

		{"usage wrong arg count", errors.New(`accepts 1 arg(s), received 0`), ExitUsage},
		{"usage unknown flag", errors.New("unknown flag: --bogus"), ExitUsage},

		{"ffmpeg missing", ffmpeg.ErrNotFound, ExitSetup},
		{"api key missing", cli.ErrAPIKeyMissing, ExitSetup},
		{"bad provider", cli.ErrUnsupportedProvider, ExitSetup},

		{"bad format", cli.ErrUnsupportedFormat, ExitValidation},
		{"missing input", cli.ErrFileNotFound, ExitValidation},
		{"output exists", cli.ErrOutputExists, ExitValidation},
		{"bad gender", cli.ErrInvalidGender, ExitValidation},
		{"bad language", lang.ErrInvalid, ExitValidation},
		{"bad voice options", tts.ErrInvalidOptions, ExitValidation},
		{"no voice", tts.ErrNoVoice, ExitValidation},
		{"extract format", extract.ErrUnsupportedFormat, ExitValidation},
		{"extract unreadable", extract.ErrUnreadable, ExitValidation},
		{"extract empty", extract.ErrEmptyInput, ExitValidation},

		{"rate limit", apierr.ErrRateLimit, ExitSynthesis},
		{"quota", apierr.ErrQuotaExceeded, ExitSynthesis},
		{"timeout", apierr.ErrTimeout, ExitSynthesis},
		{"auth", apierr.ErrAuthFailed, ExitSynthesis},
		{"unavailable", apierr.ErrUnavailable, ExitSynthesis},
		{"bad request", apierr.ErrBadRequest, ExitSynthesis},
		{"wrapped rate limit", fmt.Errorf("segment 3: %w", apierr.ErrRateLimit), ExitSynthesis},

		{"no audio", audio.ErrNoAudio, ExitAssembly},
		{"decode", audio.ErrDecode, ExitAssembly},
		{"encode failed", ffmpeg.ErrEncodeFailed, ExitAssembly},
		{"encode timeout", ffmpeg.ErrTimeout, ExitAssembly},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsCobraUsageError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unknown flag", errors.New("unknown flag: --frobnicate"), true},
		{"unknown shorthand", errors.New(`unknown shorthand flag: 'z' in -z`), true},
		{"flag needs argument", errors.New("flag needs an argument: --output"), true},
		{"invalid argument", errors.New(`invalid argument "x" for "-p, --parallel" flag`), true},
		{"arg count", errors.New("accepts 1 arg(s), received 2"), true},
		{"domain error", cli.ErrFileNotFound, false},
		{"generic error", errors.New("something broke"), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isCobraUsageError(tt.err); got != tt.want {
				t.Errorf("isCobraUsageError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
