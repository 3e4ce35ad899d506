package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/alnah/go-audiobook/internal/cli"
	"github.com/alnah/go-audiobook/internal/lang"
	"github.com/alnah/go-audiobook/internal/tts"
)

// fakeListingSynth implements both synthesis and provider voice listing.
type fakeListingSynth struct{}

func (fakeListingSynth) Synthesize(ctx context.Context, markup string, opts tts.Options) ([]byte, error) {
	return nil, errors.New("not used")
}

func (fakeListingSynth) ListVoices(ctx context.Context, language string) ([]*texttospeechpb.Voice, error) {
	return []*texttospeechpb.Voice{
		{
			Name:                   "pt-BR-Wavenet-A",
			LanguageCodes:          []string{"pt-BR"},
			SsmlGender:             texttospeechpb.SsmlVoiceGender_FEMALE,
			NaturalSampleRateHertz: 24000,
		},
	}, nil
}

type listingSynthFactory struct{}

func (listingSynthFactory) NewGoogle(ctx context.Context) (tts.Synthesizer, error) {
	return fakeListingSynth{}, nil
}
func (listingSynthFactory) NewOpenAI(apiKey string) tts.Synthesizer { return fakeListingSynth{} }

func execVoices(t *testing.T, out *bytes.Buffer, args ...string) error {
	t.Helper()

	env := cli.NewEnv(
		cli.WithStderr(out),
		cli.WithSynthesizerFactory(listingSynthFactory{}),
	)
	cmd := cli.VoicesCmd(env)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestVoices_ListsCatalog(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := execVoices(t, &out); err != nil {
		t.Fatalf("voices: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "pt-BR") || !strings.Contains(got, "en-US") {
		t.Errorf("expected multiple locales, got:\n%s", got)
	}
	if !strings.Contains(got, "premium") || !strings.Contains(got, "standard") {
		t.Errorf("expected quality markers, got:\n%s", got)
	}
}

func TestVoices_FiltersByLanguage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := execVoices(t, &out, "-l", "pt-br"); err != nil {
		t.Fatalf("voices: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "pt-BR") {
		t.Errorf("expected pt-BR voices, got:\n%s", got)
	}
	if strings.Contains(got, "en-US") {
		t.Errorf("filter leaked other locales:\n%s", got)
	}
}

func TestVoices_InvalidLanguage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := execVoices(t, &out, "-l", "klingon"); !errors.Is(err, lang.ErrInvalid) {
		t.Errorf("err = %v, want lang.ErrInvalid", err)
	}
}

func TestVoices_CustomCatalogFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "voices.yaml")
	content := `voices:
  - name: xx-Custom-A
    language: pt-BR
    gender: FEMALE
    premium: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := execVoices(t, &out, "--voices-file", path); err != nil {
		t.Fatalf("voices: %v", err)
	}
	if !strings.Contains(out.String(), "xx-Custom-A") {
		t.Errorf("custom voice missing:\n%s", out.String())
	}
}

func TestVoices_BadCatalogFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "voices.yaml")
	if err := os.WriteFile(path, []byte("voices: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := execVoices(t, &out, "--voices-file", path); err == nil {
		t.Error("empty catalog accepted")
	}
}

func TestVoices_LiveListsProviderVoices(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := execVoices(t, &out, "--live", "-l", "pt-BR"); err != nil {
		t.Fatalf("voices --live: %v", err)
	}
	if !strings.Contains(out.String(), "pt-BR-Wavenet-A") {
		t.Errorf("provider voice missing:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "24000 Hz") {
		t.Errorf("sample rate missing:\n%s", out.String())
	}
}

func TestVoices_DefaultCatalogCoversSupportedGenders(t *testing.T) {
	t.Parallel()

	catalog := tts.DefaultCatalog()
	for _, g := range []tts.Gender{tts.GenderFemale, tts.GenderMale} {
		if _, err := catalog.Pick("pt-BR", g); err != nil {
			t.Errorf("Pick(pt-BR, %s): %v", g, err)
		}
	}
}
