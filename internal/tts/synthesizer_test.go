package tts_test

import (
	"errors"
	"testing"

	"github.com/alnah/go-audiobook/internal/tts"
)

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	valid := tts.DefaultOptions()

	tests := []struct {
		name    string
		mutate  func(*tts.Options)
		wantErr bool
	}{
		{"defaults are valid", func(o *tts.Options) {}, false},
		{"missing language", func(o *tts.Options) { o.Language = "" }, true},
		{"bad gender", func(o *tts.Options) { o.Gender = "OTHER" }, true},
		{"rate too low", func(o *tts.Options) { o.SpeakingRate = 0.1 }, true},
		{"rate too high", func(o *tts.Options) { o.SpeakingRate = 4.5 }, true},
		{"rate at bounds", func(o *tts.Options) { o.SpeakingRate = 4 }, false},
		{"pitch out of range", func(o *tts.Options) { o.Pitch = 21 }, true},
		{"volume out of range", func(o *tts.Options) { o.VolumeGainDB = 17 }, true},
		{"male voice", func(o *tts.Options) { o.Gender = tts.GenderMale }, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := valid
			tt.mutate(&opts)

			err := opts.Validate()
			if tt.wantErr && !errors.Is(err, tts.ErrInvalidOptions) {
				t.Errorf("Validate() = %v, want ErrInvalidOptions", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := tts.DefaultOptions()
	if opts.Language != "pt-BR" {
		t.Errorf("Language = %q, want pt-BR", opts.Language)
	}
	if opts.Gender != tts.GenderFemale {
		t.Errorf("Gender = %q, want FEMALE", opts.Gender)
	}
	if opts.SpeakingRate != 0.95 {
		t.Errorf("SpeakingRate = %v, want 0.95", opts.SpeakingRate)
	}
	if opts.VolumeGainDB != 0.3 {
		t.Errorf("VolumeGainDB = %v, want 0.3", opts.VolumeGainDB)
	}
}
