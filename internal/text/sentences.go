package text

import (
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Splitter splits a paragraph into sentences.
//
// The primary strategy is a trained Punkt sentence tokenizer, which handles
// abbreviations, decimal numbers, and quotation marks. When the tokenizer is
// unavailable or produces nothing, a regex fallback splits on runs of
// terminal punctuation followed by whitespace, keeping the punctuation run
// attached to the sentence it terminates.
type Splitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSplitter creates a Splitter. The Punkt training data ships with the
// tokenizer package; if it fails to load, the Splitter silently degrades to
// the regex fallback.
func NewSplitter() *Splitter {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return &Splitter{}
	}
	return &Splitter{tokenizer: tok}
}

// sentenceBoundary matches a run of terminal punctuation followed by
// whitespace. Used by the fallback splitter.
var sentenceBoundary = regexp.MustCompile(`[.!?]+\s+`)

// Split returns the paragraph's sentences in order. No empty sentences are
// returned, and joining the result with single spaces reproduces the
// paragraph's content, whitespace-normalized.
func (s *Splitter) Split(paragraph string) []string {
	if s.tokenizer != nil {
		out := make([]string, 0, 8)
		for _, sent := range s.tokenizer.Tokenize(paragraph) {
			if t := strings.TrimSpace(sent.Text); t != "" {
				out = append(out, t)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallbackSplit(paragraph)
}

// fallbackSplit is the regex splitting strategy.
func fallbackSplit(paragraph string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(paragraph, -1) {
		if sent := strings.TrimSpace(paragraph[start:loc[1]]); sent != "" {
			out = append(out, sent)
		}
		start = loc[1]
	}
	if tail := strings.TrimSpace(paragraph[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}
