package tts_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-audiobook/internal/tts"
)

func TestCatalogPick_PrefersPremium(t *testing.T) {
	t.Parallel()

	c := tts.DefaultCatalog()

	got, err := c.Pick("pt-BR", tts.GenderFemale)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if got != "pt-BR-Wavenet-A" {
		t.Errorf("Pick = %q, want the premium voice", got)
	}
}

func TestCatalogPick_FallsBackToStandard(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "voices.yaml")
	content := `voices:
  - name: xx-XX-Standard-A
    language: xx-XX
    gender: FEMALE
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := tts.LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	got, err := c.Pick("xx-XX", tts.GenderFemale)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if got != "xx-XX-Standard-A" {
		t.Errorf("Pick = %q", got)
	}
}

func TestCatalogPick_NoMatch(t *testing.T) {
	t.Parallel()

	c := tts.DefaultCatalog()
	if _, err := c.Pick("zz-ZZ", tts.GenderFemale); !errors.Is(err, tts.ErrNoVoice) {
		t.Errorf("Pick error = %v, want ErrNoVoice", err)
	}
}

func TestCatalogVoices_FilterByLanguage(t *testing.T) {
	t.Parallel()

	c := tts.DefaultCatalog()
	for _, v := range c.Voices("pt-BR") {
		if v.Language != "pt-BR" {
			t.Errorf("Voices(pt-BR) returned %s (%s)", v.Name, v.Language)
		}
	}
	if len(c.Voices("pt-BR")) == 0 {
		t.Error("Voices(pt-BR) returned nothing")
	}

	// Empty filter returns everything.
	if len(c.Voices("")) < len(c.Voices("pt-BR")) {
		t.Error("Voices(\"\") should return the whole catalog")
	}
}

func TestLoadCatalog_Invalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("voices: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := tts.LoadCatalog(empty); err == nil {
		t.Error("LoadCatalog on empty catalog returned nil error")
	}

	if _, err := tts.LoadCatalog(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadCatalog on missing file returned nil error")
	}
}
