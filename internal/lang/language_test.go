package lang_test

import (
	"errors"
	"testing"

	"github.com/alnah/go-audiobook/internal/lang"
)

// ---------------------------------------------------------------------------
// Canonical
// ---------------------------------------------------------------------------

func TestCanonical_NormalizesCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "pt-BR", "pt-BR"},
		{"lowercase region", "pt-br", "pt-BR"},
		{"uppercase base", "PT-BR", "pt-BR"},
		{"underscore separator", "pt_br", "pt-BR"},
		{"surrounding whitespace", "  en-US ", "en-US"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := lang.Canonical(tt.in)
			if err != nil {
				t.Fatalf("Canonical(%q) error = %v, want nil", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonical_ExpandsBareBaseCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"pt", "pt-BR"},
		{"en", "en-US"},
		{"fr", "fr-FR"},
		{"EN", "en-US"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := lang.Canonical(tt.in)
			if err != nil {
				t.Fatalf("Canonical(%q) error = %v, want nil", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonical_RejectsUnknownCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"unknown base", "xx"},
		{"unknown region", "pt-XX"},
		{"garbage", "not a language"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := lang.Canonical(tt.in)
			if !errors.Is(err, lang.ErrInvalid) {
				t.Errorf("Canonical(%q) error = %v, want ErrInvalid", tt.in, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Validate / BaseCode / DisplayName
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := lang.Validate("pt-BR"); err != nil {
		t.Errorf("Validate(pt-BR) = %v, want nil", err)
	}
	if err := lang.Validate("zz-ZZ"); !errors.Is(err, lang.ErrInvalid) {
		t.Errorf("Validate(zz-ZZ) = %v, want ErrInvalid", err)
	}
}

func TestBaseCode(t *testing.T) {
	t.Parallel()

	if got := lang.BaseCode("pt-BR"); got != "pt" {
		t.Errorf("BaseCode(pt-BR) = %q, want %q", got, "pt")
	}
	if got := lang.BaseCode("en"); got != "en" {
		t.Errorf("BaseCode(en) = %q, want %q", got, "en")
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	if got := lang.DisplayName("pt-BR"); got != "Portuguese (Brazil)" {
		t.Errorf("DisplayName(pt-BR) = %q", got)
	}
	// Unknown locales fall back to the code itself.
	if got := lang.DisplayName("xx-XX"); got != "xx-XX" {
		t.Errorf("DisplayName(xx-XX) = %q", got)
	}
}

func TestSupported_ContainsCanonicalLocales(t *testing.T) {
	t.Parallel()

	supported := lang.Supported()
	found := false
	for _, locale := range supported {
		if locale == "pt-BR" {
			found = true
		}
		if err := lang.Validate(locale); err != nil {
			t.Errorf("Supported() contains invalid locale %q: %v", locale, err)
		}
	}
	if !found {
		t.Error("Supported() missing pt-BR")
	}
}
