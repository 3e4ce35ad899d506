package tts

import (
	"context"
	"fmt"
	"strings"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/alnah/go-audiobook/internal/apierr"
)

// googleSampleRate is the PCM sample rate requested from the provider.
const googleSampleRate = 24000

// googleClient is the narrow slice of the Cloud Text-to-Speech client
// used here, extracted for testing.
type googleClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest, opts ...gax.CallOption) (*texttospeechpb.ListVoicesResponse, error)
}

// Compile-time check that the real client satisfies the interface.
var _ googleClient = (*texttospeech.Client)(nil)

// GoogleSynthesizer synthesizes speech through Google Cloud Text-to-Speech.
// Markup input (detected by a leading speak tag) is sent as SSML, anything
// else as plain text. Output is LINEAR16 WAV at 24 kHz mono.
type GoogleSynthesizer struct {
	client      googleClient
	retry       apierr.RetryConfig
	callTimeout time.Duration
}

// GoogleOption configures a GoogleSynthesizer.
type GoogleOption func(*GoogleSynthesizer)

// WithGoogleClient sets a custom client (for testing).
func WithGoogleClient(c googleClient) GoogleOption {
	return func(g *GoogleSynthesizer) { g.client = c }
}

// WithGoogleRetry overrides the retry policy.
func WithGoogleRetry(cfg apierr.RetryConfig) GoogleOption {
	return func(g *GoogleSynthesizer) { g.retry = cfg }
}

// WithGoogleCallTimeout overrides the per-request timeout.
func WithGoogleCallTimeout(d time.Duration) GoogleOption {
	return func(g *GoogleSynthesizer) { g.callTimeout = d }
}

// NewGoogleSynthesizer creates a synthesizer backed by Application Default
// Credentials. Pass WithGoogleClient to skip the real client (tests).
func NewGoogleSynthesizer(ctx context.Context, opts ...GoogleOption) (*GoogleSynthesizer, error) {
	g := &GoogleSynthesizer{
		retry: apierr.RetryConfig{
			MaxRetries: 3,
			BaseDelay:  time.Second,
			MaxDelay:   30 * time.Second,
		},
		callTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.client == nil {
		client, err := texttospeech.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create text-to-speech client: %w", err)
		}
		g.client = client
	}
	return g, nil
}

// Close releases the underlying client connection, if any.
func (g *GoogleSynthesizer) Close() error {
	if c, ok := g.client.(*texttospeech.Client); ok {
		return c.Close()
	}
	return nil
}

// Synthesize converts one chunk to WAV audio, retrying transient failures.
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: synthesisInput(text),
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: opts.Language,
			Name:         opts.Voice,
			SsmlGender:   ssmlGender(opts.Gender),
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SampleRateHertz: googleSampleRate,
			SpeakingRate:    opts.SpeakingRate,
			Pitch:           opts.Pitch,
			VolumeGainDb:    opts.VolumeGainDB,
		},
	}

	return apierr.RetryWithBackoff(ctx, g.retry, func() ([]byte, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
		defer cancel()

		resp, err := g.client.SynthesizeSpeech(callCtx, req)
		if err != nil {
			return nil, classifyGRPCError(err)
		}
		return resp.GetAudioContent(), nil
	}, apierr.IsRetryable)
}

// ListVoices returns the provider voices available for a language.
func (g *GoogleSynthesizer) ListVoices(ctx context.Context, language string) ([]*texttospeechpb.Voice, error) {
	resp, err := g.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{
		LanguageCode: language,
	})
	if err != nil {
		return nil, classifyGRPCError(err)
	}
	return resp.GetVoices(), nil
}

// synthesisInput wraps text as SSML or plain input depending on markup.
func synthesisInput(text string) *texttospeechpb.SynthesisInput {
	if strings.HasPrefix(strings.TrimSpace(text), "<speak") {
		return &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Ssml{Ssml: text},
		}
	}
	return &texttospeechpb.SynthesisInput{
		InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
	}
}

// ssmlGender maps voice gender to the provider enum.
func ssmlGender(g Gender) texttospeechpb.SsmlVoiceGender {
	switch g {
	case GenderMale:
		return texttospeechpb.SsmlVoiceGender_MALE
	case GenderNeutral:
		return texttospeechpb.SsmlVoiceGender_NEUTRAL
	default:
		return texttospeechpb.SsmlVoiceGender_FEMALE
	}
}

// classifyGRPCError maps gRPC status codes to the shared sentinels so
// retry and exit-code logic works across providers.
func classifyGRPCError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	switch st.Code() {
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %s", apierr.ErrRateLimit, st.Message())
	case codes.Unavailable, codes.Internal, codes.Aborted:
		return fmt.Errorf("%w: %s", apierr.ErrUnavailable, st.Message())
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", apierr.ErrTimeout, st.Message())
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", apierr.ErrAuthFailed, st.Message())
	case codes.InvalidArgument, codes.OutOfRange:
		return fmt.Errorf("%w: %s", apierr.ErrBadRequest, st.Message())
	default:
		return fmt.Errorf("synthesis failed (%s): %w", st.Code(), err)
	}
}
