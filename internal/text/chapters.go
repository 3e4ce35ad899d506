package text

import (
	"regexp"
	"strings"
)

// ChapterText pairs a sequential chapter number with its body text.
// Numbers are assigned in detection order starting at 1; numerals written in
// the heading itself are used only to detect the boundary, never parsed as
// the chapter index.
type ChapterText struct {
	Number int
	Body   string
}

// headingPatterns match chapter and section headings on a single line.
// Matching is case-insensitive. The heading line is discarded from the body.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*cap[íi]tulo\s+(\d+|[ivxlc]+)\s*:?\s*(.*)$`),
	regexp.MustCompile(`(?i)^\s*chapter\s+(\d+|[ivxlc]+)\s*:?\s*(.*)$`),
	regexp.MustCompile(`(?i)^\s*parte?\s+(\d+|[ivxlc]+)\s*:?\s*(.*)$`),
	regexp.MustCompile(`^\s*(\d+)\.\s+\S.*$`),
}

// isHeading reports whether a line starts a new chapter.
func isHeading(line string) bool {
	for _, p := range headingPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// DetectChapters partitions text into chapters on heading lines.
//
// Non-matching lines accumulate into the current chapter's body with blank
// lines preserved as paragraph separators. Text before the first heading
// becomes chapter 1 when non-empty. If no heading matches, the whole input
// is chapter 1. Blank input yields no chapters.
func DetectChapters(text string) []ChapterText {
	var chapters []ChapterText
	var body []string

	flush := func() {
		joined := strings.TrimSpace(strings.Join(body, "\n"))
		body = body[:0]
		if joined == "" {
			return
		}
		chapters = append(chapters, ChapterText{Number: len(chapters) + 1, Body: joined})
	}

	for _, line := range strings.Split(text, "\n") {
		if isHeading(line) {
			flush()
			continue
		}
		body = append(body, line)
	}
	flush()

	return chapters
}
