package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-audiobook/internal/apierr"
	"github.com/alnah/go-audiobook/internal/ssml"
)

// speechCreator is the slice of the OpenAI client used here, extracted
// for testing.
type speechCreator interface {
	CreateSpeech(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error)
}

var _ speechCreator = (*openai.Client)(nil)

// OpenAISynthesizer synthesizes speech through the OpenAI speech API.
// The API does not accept markup, so any markup in the input is stripped
// before sending. Output is WAV.
type OpenAISynthesizer struct {
	client      speechCreator
	retry       apierr.RetryConfig
	callTimeout time.Duration
}

// OpenAIOption configures an OpenAISynthesizer.
type OpenAIOption func(*OpenAISynthesizer)

// WithOpenAIClient sets a custom client (for testing).
func WithOpenAIClient(c speechCreator) OpenAIOption {
	return func(o *OpenAISynthesizer) { o.client = c }
}

// WithOpenAIRetry overrides the retry policy.
func WithOpenAIRetry(cfg apierr.RetryConfig) OpenAIOption {
	return func(o *OpenAISynthesizer) { o.retry = cfg }
}

// NewOpenAISynthesizer creates a synthesizer using the given API key.
func NewOpenAISynthesizer(apiKey string, opts ...OpenAIOption) *OpenAISynthesizer {
	o := &OpenAISynthesizer{
		retry: apierr.RetryConfig{
			MaxRetries: 3,
			BaseDelay:  time.Second,
			MaxDelay:   30 * time.Second,
		},
		callTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.client == nil {
		o.client = openai.NewClient(apiKey)
	}
	return o
}

// Synthesize converts one chunk to WAV audio, retrying transient failures.
func (o *OpenAISynthesizer) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	plain := ssml.Strip(text)
	if plain == "" {
		return nil, ErrEmptyInput
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          plain,
		Voice:          openAIVoice(opts),
		ResponseFormat: openai.SpeechResponseFormatWav,
		Speed:          opts.SpeakingRate,
	}

	return apierr.RetryWithBackoff(ctx, o.retry, func() ([]byte, error) {
		callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
		defer cancel()

		resp, err := o.client.CreateSpeech(callCtx, req)
		if err != nil {
			return nil, classifyOpenAIError(err)
		}
		defer func() { _ = resp.Close() }()

		data, err := io.ReadAll(resp)
		if err != nil {
			return nil, fmt.Errorf("read speech response: %w", err)
		}
		return data, nil
	}, apierr.IsRetryable)
}

// openAIVoice maps voice options onto the fixed OpenAI voice set. Named
// voices pass through when they match a known voice; otherwise gender
// picks a default.
func openAIVoice(opts Options) openai.SpeechVoice {
	switch openai.SpeechVoice(strings.ToLower(opts.Voice)) {
	case openai.VoiceAlloy, openai.VoiceEcho, openai.VoiceFable,
		openai.VoiceOnyx, openai.VoiceNova, openai.VoiceShimmer:
		return openai.SpeechVoice(strings.ToLower(opts.Voice))
	}

	switch opts.Gender {
	case GenderMale:
		return openai.VoiceOnyx
	case GenderNeutral:
		return openai.VoiceAlloy
	default:
		return openai.VoiceNova
	}
}

// classifyOpenAIError maps OpenAI API errors to the shared sentinels.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", apierr.ErrTimeout, err)
		}
		return fmt.Errorf("synthesis failed: %w", err)
	}

	switch {
	case apiErr.HTTPStatusCode == 429 && strings.Contains(strings.ToLower(apiErr.Message), "quota"):
		return fmt.Errorf("%w: %s", apierr.ErrQuotaExceeded, apiErr.Message)
	case apiErr.HTTPStatusCode == 429:
		return fmt.Errorf("%w: %s", apierr.ErrRateLimit, apiErr.Message)
	case apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403:
		return fmt.Errorf("%w: %s", apierr.ErrAuthFailed, apiErr.Message)
	case apiErr.HTTPStatusCode == 400:
		return fmt.Errorf("%w: %s", apierr.ErrBadRequest, apiErr.Message)
	case apiErr.HTTPStatusCode >= 500:
		return fmt.Errorf("%w: %s", apierr.ErrUnavailable, apiErr.Message)
	default:
		return fmt.Errorf("synthesis failed (HTTP %d): %w", apiErr.HTTPStatusCode, err)
	}
}
