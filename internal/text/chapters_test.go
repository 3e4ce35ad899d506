package text_test

import (
	"strings"
	"testing"

	"github.com/alnah/go-audiobook/internal/text"
)

// ---------------------------------------------------------------------------
// DetectChapters
// ---------------------------------------------------------------------------

func TestDetectChapters_NoHeadingIsSingleChapter(t *testing.T) {
	t.Parallel()

	got := text.DetectChapters("Just some prose.\n\nMore prose.")
	if len(got) != 1 {
		t.Fatalf("DetectChapters returned %d chapters, want 1", len(got))
	}
	if got[0].Number != 1 {
		t.Errorf("chapter number = %d, want 1", got[0].Number)
	}
	if !strings.Contains(got[0].Body, "Just some prose.") {
		t.Errorf("chapter body missing prose: %q", got[0].Body)
	}
}

func TestDetectChapters_BlankInputYieldsNothing(t *testing.T) {
	t.Parallel()

	if got := text.DetectChapters("   \n\n  "); got != nil {
		t.Errorf("DetectChapters(blank) = %v, want nil", got)
	}
}

func TestDetectChapters_PreambleBecomesChapterOne(t *testing.T) {
	t.Parallel()

	input := "Preface text here.\n\nCapítulo 1: O Início\n\nFirst chapter body."
	got := text.DetectChapters(input)

	if len(got) != 2 {
		t.Fatalf("DetectChapters returned %d chapters, want 2", len(got))
	}
	if got[0].Number != 1 || got[1].Number != 2 {
		t.Errorf("chapter numbers = [%d, %d], want [1, 2]", got[0].Number, got[1].Number)
	}
	if !strings.Contains(got[0].Body, "Preface") {
		t.Errorf("chapter 1 should hold the preamble, got %q", got[0].Body)
	}
	if !strings.Contains(got[1].Body, "First chapter body") {
		t.Errorf("chapter 2 body = %q", got[1].Body)
	}
}

func TestDetectChapters_HeadingVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		heading string
	}{
		{"capitulo with accent", "Capítulo 2: A Volta"},
		{"capitulo without accent", "capitulo 3"},
		{"english chapter", "Chapter IV: The Return"},
		{"parte", "Parte 2"},
		{"numbered section", "12. The Long Road"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := "Before.\n" + tt.heading + "\nAfter."
			got := text.DetectChapters(input)
			if len(got) != 2 {
				t.Fatalf("heading %q: got %d chapters, want 2", tt.heading, len(got))
			}
		})
	}
}

func TestDetectChapters_NumbersAreSequentialNotParsed(t *testing.T) {
	t.Parallel()

	// Heading numerals are boundary markers only; output numbering is
	// always 1..N in detection order.
	input := "Capítulo 7\nSeven.\nCapítulo 3\nThree."
	got := text.DetectChapters(input)

	if len(got) != 2 {
		t.Fatalf("got %d chapters, want 2", len(got))
	}
	if got[0].Number != 1 || got[1].Number != 2 {
		t.Errorf("chapter numbers = [%d, %d], want [1, 2]", got[0].Number, got[1].Number)
	}
}

func TestDetectChapters_HeadingLineDiscarded(t *testing.T) {
	t.Parallel()

	got := text.DetectChapters("Chapter 1\nBody only.")
	if len(got) != 1 {
		t.Fatalf("got %d chapters, want 1", len(got))
	}
	if strings.Contains(got[0].Body, "Chapter") {
		t.Errorf("heading leaked into body: %q", got[0].Body)
	}
}

func TestDetectChapters_DecimalListLineIsNotHeading(t *testing.T) {
	t.Parallel()

	// "3.14 is pi" must not start a chapter: the numbered-heading form
	// requires a dot followed by whitespace.
	got := text.DetectChapters("The value 3.14 is pi.\nStill chapter one.")
	if len(got) != 1 {
		t.Fatalf("got %d chapters, want 1", len(got))
	}
}
