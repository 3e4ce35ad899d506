package cli

import (
	"context"
	"fmt"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/spf13/cobra"

	"github.com/alnah/go-audiobook/internal/lang"
	"github.com/alnah/go-audiobook/internal/tts"
)

// voiceLister is implemented by providers that can enumerate their voices.
type voiceLister interface {
	ListVoices(ctx context.Context, language string) ([]*texttospeechpb.Voice, error)
}

// VoicesCmd creates the voices command, listing catalog voices.
// The env parameter provides injectable dependencies for testing.
func VoicesCmd(env *Env) *cobra.Command {
	var (
		language   string
		voicesFile string
		live       bool
	)

	cmd := &cobra.Command{
		Use:   "voices",
		Short: "List available narration voices",
		Long: `List the narration voices in the catalog.

Premium voices are higher-quality and preferred automatically when no
--voice flag is given to generate.

With --live, the voices are fetched from the Google Cloud TTS API
instead of the built-in catalog (requires credentials).`,
		Example: `  audiobook voices
  audiobook voices -l pt-BR
  audiobook voices -l pt-BR --live
  audiobook voices --voices-file custom.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if live {
				return runVoicesLive(cmd.Context(), env, language)
			}
			return runVoices(env, language, voicesFile)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Filter by language (BCP-47, e.g. pt-BR)")
	cmd.Flags().StringVar(&voicesFile, "voices-file", "", "YAML file overriding the voice catalog")
	cmd.Flags().BoolVar(&live, "live", false, "Query the provider API instead of the catalog")

	return cmd
}

// runVoices handles the voices command.
func runVoices(env *Env, language, voicesFile string) error {
	locale := ""
	if language != "" {
		var err error
		locale, err = lang.Canonical(language)
		if err != nil {
			return err
		}
	}

	catalog := tts.DefaultCatalog()
	if voicesFile != "" {
		var err error
		catalog, err = tts.LoadCatalog(voicesFile)
		if err != nil {
			return err
		}
	}

	voices := catalog.Voices(locale)
	if len(voices) == 0 {
		fmt.Fprintf(env.Stderr, "No voices for %s\n", locale)
		return nil
	}

	for _, v := range voices {
		quality := "standard"
		if v.Premium {
			quality = "premium"
		}
		fmt.Fprintf(env.Stderr, "%-22s %-8s %-8s %s (%s)\n",
			v.Name, v.Language, v.Gender, quality, lang.DisplayName(v.Language))
	}
	return nil
}

// runVoicesLive lists voices straight from the provider API.
func runVoicesLive(ctx context.Context, env *Env, language string) error {
	locale := ""
	if language != "" {
		var err error
		locale, err = lang.Canonical(language)
		if err != nil {
			return err
		}
	}

	synth, err := env.SynthesizerFactory.NewGoogle(ctx)
	if err != nil {
		return err
	}
	lister, ok := synth.(voiceLister)
	if !ok {
		return fmt.Errorf("%w: provider cannot list voices", ErrUnsupportedProvider)
	}

	voices, err := lister.ListVoices(ctx, locale)
	if err != nil {
		return err
	}
	if len(voices) == 0 {
		fmt.Fprintf(env.Stderr, "No voices for %s\n", locale)
		return nil
	}

	for _, v := range voices {
		code := ""
		if codes := v.GetLanguageCodes(); len(codes) > 0 {
			code = codes[0]
		}
		fmt.Fprintf(env.Stderr, "%-22s %-8s %-8s %d Hz\n",
			v.GetName(), code, v.GetSsmlGender(), v.GetNaturalSampleRateHertz())
	}
	return nil
}
