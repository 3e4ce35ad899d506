package tts

import "errors"

// ErrInvalidOptions indicates synthesis options failed validation.
var ErrInvalidOptions = errors.New("invalid synthesis options")

// ErrNoVoice indicates no voice in the catalog matches the requested
// language and gender.
var ErrNoVoice = errors.New("no matching voice")

// ErrEmptyInput indicates there was no text to synthesize.
var ErrEmptyInput = errors.New("empty synthesis input")
