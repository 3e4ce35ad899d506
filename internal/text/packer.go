package text

// Packer turns raw text into size-bounded segments ready for synthesis.
// It orchestrates chapter detection, paragraph and sentence splitting,
// cleaning, and greedy chunk packing.
type Packer struct {
	splitter  *Splitter
	cleaner   *Cleaner
	estimator *Estimator
}

// PackerOption configures a Packer.
type PackerOption func(*Packer)

// WithCleaner sets a custom Cleaner (e.g. with an overridden abbreviation table).
func WithCleaner(c *Cleaner) PackerOption {
	return func(p *Packer) { p.cleaner = c }
}

// WithEstimator sets a custom size Estimator.
func WithEstimator(e *Estimator) PackerOption {
	return func(p *Packer) { p.estimator = e }
}

// WithSplitter sets a custom sentence Splitter.
func WithSplitter(s *Splitter) PackerOption {
	return func(p *Packer) { p.splitter = s }
}

// NewPacker creates a Packer with default components.
func NewPacker(opts ...PackerOption) *Packer {
	p := &Packer{
		splitter:  NewSplitter(),
		cleaner:   NewCleaner(nil),
		estimator: NewEstimator(DefaultEstimatorConfig()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pack splits text into segments whose estimated wrapped size stays within
// maxBytes. Sentences are cleaned, then greedily appended to the current
// chunk; a chunk closes when adding the next sentence would exceed maxBytes.
// A single sentence larger than maxBytes is still emitted whole (never split
// mid-sentence; the synthesis provider is responsible for rejecting it).
// Segments never span a paragraph boundary, and output order is chapter,
// then paragraph, then chunk order.
func (p *Packer) Pack(text string, maxBytes int) []Segment {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxChunkBytes
	}

	var segments []Segment
	for _, chapter := range DetectChapters(text) {
		for i, paragraph := range SplitParagraphs(chapter.Body) {
			paraNum := i + 1

			var buf string
			var count int
			flush := func() {
				if buf == "" {
					return
				}
				segments = append(segments, Segment{
					Text:      buf,
					Kind:      KindParagraph,
					Chapter:   chapter.Number,
					Paragraph: paraNum,
					Sentences: count,
				})
				buf, count = "", 0
			}

			for _, sentence := range p.splitter.Split(paragraph) {
				cleaned := p.cleaner.Clean(sentence)
				if cleaned == "" {
					continue
				}
				if buf != "" {
					candidate := buf + " " + cleaned
					if p.estimator.EstimateWrappedSize(candidate) > maxBytes {
						flush()
						buf, count = cleaned, 1
						continue
					}
					buf, count = candidate, count+1
					continue
				}
				buf, count = cleaned, 1
			}
			flush()
		}
	}
	return segments
}
