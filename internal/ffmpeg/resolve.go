// Package ffmpeg locates and runs the FFmpeg binary used for final
// MP3 encoding. The binary must be installed on the host; FFMPEG_PATH
// overrides PATH lookup.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvPath is the environment variable that overrides PATH lookup.
const EnvPath = "FFMPEG_PATH"

// Resolve locates the FFmpeg binary. Precedence: FFMPEG_PATH, then PATH.
// Returns ErrNotFound when no usable binary exists.
func Resolve() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%w: %s=%q: %v", ErrNotFound, EnvPath, p, err)
		}
		return p, nil
	}

	p, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("%w: install ffmpeg or set %s", ErrNotFound, EnvPath)
	}
	return p, nil
}

// CheckVersion runs `ffmpeg -version` and returns the first line, as a
// sanity check that the resolved path is actually FFmpeg.
func CheckVersion(ctx context.Context, path string) (string, error) {
	out, err := RunOutput(ctx, path, []string{"-version"})
	if err != nil {
		return "", fmt.Errorf("%w: %q is not runnable: %v", ErrNotFound, path, err)
	}

	line, _, _ := strings.Cut(out, "\n")
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(strings.ToLower(line), "ffmpeg version") {
		return "", fmt.Errorf("%w: %q does not look like ffmpeg", ErrNotFound, path)
	}
	return line, nil
}
