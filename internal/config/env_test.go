package config_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-audiobook/internal/config"
)

// unsetenv removes a variable for the test and restores it afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "") // registers restoration of the original value
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	// Clear anything the host environment may carry.
	unsetenv(t, "AUDIOBOOK_LANGUAGE")
	unsetenv(t, "AUDIOBOOK_GENDER")
	unsetenv(t, "AUDIOBOOK_MAX_CHUNK_BYTES")
	unsetenv(t, "AUDIOBOOK_PARALLEL")
	unsetenv(t, "AUDIOBOOK_LOG_LEVEL")
	unsetenv(t, "AUDIOBOOK_LOG_FORMAT")

	env, err := config.LoadEnv(context.Background())
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}

	if env.Language != "pt-BR" {
		t.Errorf("Language = %q, want pt-BR", env.Language)
	}
	if env.Gender != "FEMALE" {
		t.Errorf("Gender = %q, want FEMALE", env.Gender)
	}
	if env.MaxChunkBytes != 3500 {
		t.Errorf("MaxChunkBytes = %d, want 3500", env.MaxChunkBytes)
	}
	if env.Parallel != 4 {
		t.Errorf("Parallel = %d, want 4", env.Parallel)
	}
	if env.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", env.LogLevel)
	}
	if env.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", env.LogFormat)
	}
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("AUDIOBOOK_LANGUAGE", "en-US")
	t.Setenv("AUDIOBOOK_GENDER", "MALE")
	t.Setenv("AUDIOBOOK_MAX_CHUNK_BYTES", "2000")
	t.Setenv("AUDIOBOOK_PARALLEL", "8")

	env, err := config.LoadEnv(context.Background())
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}

	if env.Language != "en-US" {
		t.Errorf("Language = %q", env.Language)
	}
	if env.Gender != "MALE" {
		t.Errorf("Gender = %q", env.Gender)
	}
	if env.MaxChunkBytes != 2000 {
		t.Errorf("MaxChunkBytes = %d", env.MaxChunkBytes)
	}
	if env.Parallel != 8 {
		t.Errorf("Parallel = %d", env.Parallel)
	}
}

func TestLoadEnv_InvalidInteger(t *testing.T) {
	t.Setenv("AUDIOBOOK_PARALLEL", "lots")

	if _, err := config.LoadEnv(context.Background()); err == nil {
		t.Error("invalid integer accepted")
	}
}

// ---------------------------------------------------------------------------
// Logger construction
// ---------------------------------------------------------------------------

func TestNewLogger_TextFormat(t *testing.T) {
	t.Parallel()

	env := &config.Env{LogLevel: "info", LogFormat: "text"}
	var buf bytes.Buffer

	log := env.NewLogger(&buf)
	log.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "key=value") {
		t.Errorf("text output = %q", out)
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	t.Parallel()

	env := &config.Env{LogLevel: "info", LogFormat: "json"}
	var buf bytes.Buffer

	log := env.NewLogger(&buf)
	log.Info("hello")

	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("json output = %q", out)
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level     string
		wantDebug bool
		wantWarn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"bogus", false, true}, // falls back to info
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			env := &config.Env{LogLevel: tt.level, LogFormat: "text"}
			var buf bytes.Buffer
			log := env.NewLogger(&buf)

			log.Debug("dbg")
			log.Warn("wrn")

			out := buf.String()
			if got := strings.Contains(out, "msg=dbg"); got != tt.wantDebug {
				t.Errorf("debug emitted = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "msg=wrn"); got != tt.wantWarn {
				t.Errorf("warn emitted = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}
