// Package ssml builds the markup envelope sent to speech synthesis: the
// speak-tag wrapper and per-sentence pause markers. The overhead constants
// in the text package's estimator must stay at or above the sizes produced
// here.
package ssml

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultSentencePause is the pause inserted after each sentence.
const DefaultSentencePause = 800 * time.Millisecond

// breakPoint matches a terminal punctuation character followed by
// whitespace, i.e. a sentence boundary inside the chunk. The final
// terminator has no trailing whitespace and gets no break.
var breakPoint = regexp.MustCompile(`([.!?])\s+`)

// tag matches any markup tag, for stripping.
var tag = regexp.MustCompile(`<[^>]+>`)

// Build wraps cleaned text in a speak envelope with pause markers after
// internal sentence boundaries.
func Build(text string, sentencePause time.Duration) string {
	if sentencePause <= 0 {
		sentencePause = DefaultSentencePause
	}
	marker := fmt.Sprintf(`$1 <break time="%s"/> `, formatPause(sentencePause))
	return "<speak>" + breakPoint.ReplaceAllString(text, marker) + "</speak>"
}

// Strip removes all markup tags, returning plain text for providers that do
// not accept markup. Whitespace left behind by removed tags is collapsed.
func Strip(markup string) string {
	plain := tag.ReplaceAllString(markup, "")
	return strings.TrimSpace(strings.Join(strings.Fields(plain), " "))
}

// formatPause renders a duration as seconds with one decimal, the form the
// synthesis provider expects in break tags (e.g. "0.8s").
func formatPause(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
