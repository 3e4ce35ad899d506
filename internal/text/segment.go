// Package text implements the segmentation engine: chapter detection,
// paragraph and sentence splitting, cleaning, and size-bounded packing of
// sentences into segments ready for speech synthesis.
package text

import "fmt"

// Kind classifies the granularity of a Segment.
//
// Current packing policy always emits KindParagraph (a segment is a run of
// one or more sentences within a single paragraph). The other variants are
// reserved for finer or coarser packing policies.
type Kind int

const (
	KindSentence Kind = iota
	KindParagraph
	KindChapter
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSentence:
		return "sentence"
	case KindParagraph:
		return "paragraph"
	case KindChapter:
		return "chapter"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Segment is a bounded unit of cleaned text to be sent to speech synthesis.
// Segments are created by Packer and immutable afterwards.
//
// Within the output of a single Pack call, (Chapter, Paragraph) pairs are
// monotonically non-decreasing and segments never span a paragraph boundary.
type Segment struct {
	Text      string
	Kind      Kind
	Chapter   int // 1-based chapter index, in detection order
	Paragraph int // 1-based paragraph index within its chapter
	Sentences int // number of source sentences folded into this segment
}

// String returns a human-readable representation for logging.
func (s Segment) String() string {
	return fmt.Sprintf("segment ch%d p%d: %d sentence(s), %d bytes",
		s.Chapter, s.Paragraph, s.Sentences, len(s.Text))
}
