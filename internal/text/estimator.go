package text

import "regexp"

// Default markup size limits, matching the synthesis provider's payload
// contract. MaxProviderBytes is the hard limit enforced downstream;
// DefaultMaxChunkBytes leaves headroom for estimation error.
const (
	DefaultMaxChunkBytes = 3500
	MaxProviderBytes     = 4000
)

// EstimatorConfig holds the overhead constants used to predict the
// markup-wrapped size of a chunk without building the markup. Each constant
// must be at least as large as the markup it stands for, so the estimate
// never under-approximates the real payload.
type EstimatorConfig struct {
	EnvelopeOverhead int // speak-tag envelope
	SentenceOverhead int // per sentence pause marker
	NumberOverhead   int // per number pronunciation tag
}

// DefaultEstimatorConfig returns the overhead constants for the current
// markup envelope (see the ssml package).
func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		EnvelopeOverhead: 15,
		SentenceOverhead: 25,
		NumberOverhead:   35,
	}
}

var (
	terminatorRun = regexp.MustCompile(`[.!?]+`)
	digitToken    = regexp.MustCompile(`\b\d+\b`)
)

// Estimator predicts the wire size of a cleaned text chunk once wrapped in
// synthesis markup.
type Estimator struct {
	cfg EstimatorConfig
}

// NewEstimator creates an Estimator. Non-positive config fields fall back to
// the defaults.
func NewEstimator(cfg EstimatorConfig) *Estimator {
	def := DefaultEstimatorConfig()
	if cfg.EnvelopeOverhead <= 0 {
		cfg.EnvelopeOverhead = def.EnvelopeOverhead
	}
	if cfg.SentenceOverhead <= 0 {
		cfg.SentenceOverhead = def.SentenceOverhead
	}
	if cfg.NumberOverhead <= 0 {
		cfg.NumberOverhead = def.NumberOverhead
	}
	return &Estimator{cfg: cfg}
}

// EstimateWrappedSize returns the predicted size in bytes of text once
// wrapped in the markup envelope, pause markers, and pronunciation tags.
func (e *Estimator) EstimateWrappedSize(text string) int {
	sentenceRuns := len(terminatorRun.FindAllStringIndex(text, -1))
	numbers := len(digitToken.FindAllStringIndex(text, -1))
	return len(text) +
		e.cfg.EnvelopeOverhead +
		e.cfg.SentenceOverhead*sentenceRuns +
		e.cfg.NumberOverhead*numbers
}
