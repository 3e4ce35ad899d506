package ffmpeg_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-audiobook/internal/ffmpeg"
)

// fakeBinary writes an executable shell script and returns its path.
func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// These tests mutate FFMPEG_PATH via t.Setenv, so no t.Parallel().

func TestResolve_EnvOverride(t *testing.T) {
	fake := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ffmpeg.EnvPath, fake)

	got, err := ffmpeg.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != fake {
		t.Errorf("Resolve = %q, want %q", got, fake)
	}
}

func TestResolve_EnvOverrideMissingFile(t *testing.T) {
	t.Setenv(ffmpeg.EnvPath, filepath.Join(t.TempDir(), "nope"))

	if _, err := ffmpeg.Resolve(); !errors.Is(err, ffmpeg.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolve_NotOnPath(t *testing.T) {
	t.Setenv(ffmpeg.EnvPath, "")
	t.Setenv("PATH", t.TempDir())

	if _, err := ffmpeg.Resolve(); !errors.Is(err, ffmpeg.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCheckVersion(t *testing.T) {
	t.Parallel()

	bin := fakeBinary(t, "#!/bin/sh\necho 'ffmpeg version 6.1-test Copyright'\n")
	line, err := ffmpeg.CheckVersion(context.Background(), bin)
	if err != nil {
		t.Fatalf("CheckVersion: %v", err)
	}
	if !strings.HasPrefix(line, "ffmpeg version 6.1-test") {
		t.Errorf("line = %q", line)
	}
}

func TestCheckVersion_NotFFmpeg(t *testing.T) {
	t.Parallel()

	bin := fakeBinary(t, "#!/bin/sh\necho 'totally different tool'\n")
	if _, err := ffmpeg.CheckVersion(context.Background(), bin); !errors.Is(err, ffmpeg.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCheckVersion_NotRunnable(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := ffmpeg.CheckVersion(context.Background(), missing); !errors.Is(err, ffmpeg.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
