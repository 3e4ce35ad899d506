// Package tts turns text chunks into audio through pluggable speech
// synthesis providers. Two providers are implemented: Google Cloud
// Text-to-Speech (markup-aware, the default) and OpenAI speech (plain
// text only). Both return uncompressed WAV so the assembly stage can
// operate on raw samples.
package tts

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Gender selects the voice gender.
type Gender string

// Voice genders.
const (
	GenderFemale  Gender = "FEMALE"
	GenderMale    Gender = "MALE"
	GenderNeutral Gender = "NEUTRAL"
)

// Synthesizer converts one chunk of text (plain or markup) to WAV audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, opts Options) ([]byte, error)
}

// Options control voice selection and prosody for a synthesis run.
type Options struct {
	// Language is the canonical locale, e.g. "pt-BR".
	Language string `validate:"required"`

	// Voice is the provider voice name. Empty means pick from the catalog.
	Voice string

	Gender Gender `validate:"oneof=FEMALE MALE NEUTRAL"`

	// SpeakingRate is the speed multiplier. 1.0 is the voice default.
	SpeakingRate float64 `validate:"gte=0.25,lte=4"`

	// Pitch adjustment in semitones.
	Pitch float64 `validate:"gte=-20,lte=20"`

	// VolumeGainDB adjusts output volume in dB.
	VolumeGainDB float64 `validate:"gte=-96,lte=16"`
}

// validate is the shared struct validator. Struct tags carry the ranges.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks option ranges. Wraps ErrInvalidOptions.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// DefaultOptions returns the narration defaults: Brazilian Portuguese,
// female voice, slightly slowed delivery with a small volume boost.
func DefaultOptions() Options {
	return Options{
		Language:     "pt-BR",
		Gender:       GenderFemale,
		SpeakingRate: 0.95,
		Pitch:        0,
		VolumeGainDB: 0.3,
	}
}
