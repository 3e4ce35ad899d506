package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrAPIKeyMissing indicates OPENAI_API_KEY environment variable is not set.
	ErrAPIKeyMissing = errors.New("OPENAI_API_KEY environment variable not set")

	// ErrUnsupportedFormat indicates an input file has an unsupported extension.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrFileNotFound indicates the specified input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrOutputExists indicates the output file already exists.
	ErrOutputExists = errors.New("output file already exists")

	// ErrUnsupportedProvider indicates an unknown synthesis provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider (use: google, openai)")

	// ErrInvalidGender indicates a gender flag value outside FEMALE/MALE/NEUTRAL.
	ErrInvalidGender = errors.New("invalid gender (use: FEMALE, MALE, NEUTRAL)")
)
