package text

import "strings"

// SplitParagraphs splits a chapter body into paragraphs.
//
// A paragraph is a run of consecutive non-blank lines joined with single
// spaces. One or more blank lines terminate a paragraph. Paragraphs are
// trimmed and empty ones dropped.
func SplitParagraphs(chapterText string) []string {
	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		paragraphs = append(paragraphs, strings.Join(current, " "))
		current = current[:0]
	}

	for _, line := range strings.Split(chapterText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		current = append(current, trimmed)
	}
	flush()

	return paragraphs
}
