package audio

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alnah/go-audiobook/internal/tts"
)

// Assembly defaults, tuned for narration.
const (
	DefaultSegmentPause = 800 * time.Millisecond
	DefaultChapterPause = 3 * time.Second
	DefaultFadeIn       = 1 * time.Second
	DefaultFadeOut      = 2 * time.Second
	DefaultTargetDBFS   = -20.0
	DefaultPlaceholder  = 1 * time.Second
	DefaultSampleRate   = 24000
	DefaultChannels     = 1
)

// Config holds assembly parameters. Zero values take the defaults.
type Config struct {
	SegmentPause time.Duration
	ChapterPause time.Duration
	FadeIn       time.Duration
	FadeOut      time.Duration

	// TargetDBFS is the RMS loudness target for each decoded segment.
	TargetDBFS float64

	// Placeholder is the silent-track duration used when there is
	// nothing to assemble.
	Placeholder time.Duration

	SampleRate int
	Channels   int
}

func (c Config) withDefaults() Config {
	if c.SegmentPause <= 0 {
		c.SegmentPause = DefaultSegmentPause
	}
	if c.ChapterPause <= 0 {
		c.ChapterPause = DefaultChapterPause
	}
	if c.FadeIn <= 0 {
		c.FadeIn = DefaultFadeIn
	}
	if c.FadeOut <= 0 {
		c.FadeOut = DefaultFadeOut
	}
	if c.TargetDBFS == 0 {
		c.TargetDBFS = DefaultTargetDBFS
	}
	if c.Placeholder <= 0 {
		c.Placeholder = DefaultPlaceholder
	}
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.Channels <= 0 {
		c.Channels = DefaultChannels
	}
	return c
}

// Assembler joins synthesized segments into continuous tracks.
type Assembler struct {
	cfg Config
	log *slog.Logger
}

// NewAssembler creates an Assembler. A nil logger discards logs.
func NewAssembler(cfg Config, log *slog.Logger) *Assembler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Assembler{cfg: cfg.withDefaults(), log: log}
}

// ChapterClip is one per-chapter assembly result.
type ChapterClip struct {
	Chapter int
	Clip    Clip
	Skipped int
}

// Assemble joins all segments into a single track. Segments that fail to
// decode are skipped with a warning; the skip count is returned. Pauses
// are inserted between segments, and longer pauses at chapter transitions
// when insertChapterBreaks is set. The finished track is faded in and out.
//
// An empty batch yields a silent placeholder track. A non-empty batch
// where nothing decodes returns ErrNoAudio.
func (a *Assembler) Assemble(segs []tts.SegmentAudio, insertChapterBreaks bool) (Clip, int, error) {
	if len(segs) == 0 {
		a.log.Warn("no segments to assemble, producing placeholder silence")
		return Silence(a.cfg.Placeholder, a.cfg.SampleRate, a.cfg.Channels), 0, nil
	}

	segPause := Silence(a.cfg.SegmentPause, a.cfg.SampleRate, a.cfg.Channels)
	chapPause := Silence(a.cfg.ChapterPause, a.cfg.SampleRate, a.cfg.Channels)

	var (
		parts       []Clip
		skipped     int
		lastChapter = -1
	)

	for _, seg := range segs {
		clip, err := a.decodeSegment(seg)
		if err != nil {
			skipped++
			a.log.Warn("skipping segment",
				"chapter", seg.Chapter,
				"paragraph", seg.Paragraph,
				"error", err)
			continue
		}

		if len(parts) > 0 {
			if insertChapterBreaks && seg.Chapter != lastChapter {
				parts = append(parts, chapPause)
			} else {
				parts = append(parts, segPause)
			}
		}
		parts = append(parts, clip)
		lastChapter = seg.Chapter
	}

	if len(parts) == 0 {
		return Clip{}, skipped, fmt.Errorf("%w: all %d segments skipped", ErrNoAudio, len(segs))
	}

	track := Concat(parts...).FadeIn(a.cfg.FadeIn).FadeOut(a.cfg.FadeOut)
	return track, skipped, nil
}

// AssemblePerChapter groups segments by chapter in first-appearance order
// and assembles each chapter as its own track. Chapters where every
// segment fails are dropped with a warning; an error is returned only
// when no chapter produces audio.
//
// An empty batch yields a single silent placeholder chapter, matching
// Assemble. A non-empty batch where nothing decodes returns ErrNoAudio.
func (a *Assembler) AssemblePerChapter(segs []tts.SegmentAudio) ([]ChapterClip, error) {
	if len(segs) == 0 {
		a.log.Warn("no segments to assemble, producing placeholder chapter")
		return []ChapterClip{{
			Chapter: 1,
			Clip:    Silence(a.cfg.Placeholder, a.cfg.SampleRate, a.cfg.Channels),
		}}, nil
	}

	// Stable grouping: chapters appear in the order their first segment does.
	var order []int
	groups := make(map[int][]tts.SegmentAudio)
	for _, seg := range segs {
		if _, ok := groups[seg.Chapter]; !ok {
			order = append(order, seg.Chapter)
		}
		groups[seg.Chapter] = append(groups[seg.Chapter], seg)
	}

	var out []ChapterClip
	for _, ch := range order {
		clip, skipped, err := a.Assemble(groups[ch], false)
		if err != nil {
			a.log.Warn("dropping chapter with no audio", "chapter", ch, "error", err)
			continue
		}
		out = append(out, ChapterClip{Chapter: ch, Clip: clip, Skipped: skipped})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: every chapter failed", ErrNoAudio)
	}
	return out, nil
}

// decodeSegment decodes, normalizes, and converts one segment to the
// assembly format.
func (a *Assembler) decodeSegment(seg tts.SegmentAudio) (Clip, error) {
	if len(seg.Data) == 0 {
		return Clip{}, fmt.Errorf("%w: no data", ErrDecode)
	}
	clip, err := DecodeWAV(seg.Data)
	if err != nil {
		return Clip{}, err
	}
	return clip.
		Convert(a.cfg.SampleRate, a.cfg.Channels).
		Normalize(a.cfg.TargetDBFS), nil
}
