// Package pipeline runs the end-to-end audiobook generation flow:
// extract text, pack it into synthesis-sized segments, synthesize in
// parallel, assemble tracks, encode MP3, and tag the output.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-audiobook/internal/audio"
	"github.com/alnah/go-audiobook/internal/extract"
	"github.com/alnah/go-audiobook/internal/ssml"
	"github.com/alnah/go-audiobook/internal/tag"
	"github.com/alnah/go-audiobook/internal/text"
	"github.com/alnah/go-audiobook/internal/tts"
)

// PreviewSegments is how many leading segments a preview run synthesizes.
const PreviewSegments = 5

// Request describes one generation run.
type Request struct {
	// InputPath is the book file (.txt, .md, .epub, .pdf).
	InputPath string

	// OutputPath is the MP3 path for single-file output.
	OutputPath string

	// OutputDir and Prefix shape per-chapter output paths
	// (<dir>/<prefix>_NN.mp3) when SplitChapters is set.
	OutputDir string
	Prefix    string

	// SplitChapters produces one MP3 per chapter instead of one file.
	SplitChapters bool

	// Preview limits synthesis to the first PreviewSegments segments.
	Preview bool

	MaxChunkBytes int
	Parallel      int

	Voice tts.Options
	Meta  tag.Metadata
}

// Result reports what a run produced.
type Result struct {
	OutputFiles []string
	Segments    int
	Chapters    int

	// Warnings counts segments that failed synthesis or decoding and
	// were skipped rather than aborting the run.
	Warnings int

	// Duration is the total audio length across output files.
	Duration time.Duration
}

// Encoder converts a WAV file into the final compressed track.
type Encoder interface {
	Encode(ctx context.Context, wavPath, mp3Path string) error
}

// Generator wires the pipeline stages. All stages are injectable so the
// flow can be tested without providers or FFmpeg.
type Generator struct {
	Extract   func(path string) (string, error)
	Packer    *text.Packer
	Synth     tts.Synthesizer
	Assembler *audio.Assembler
	Encoder   Encoder
	Tagger    func(path string, m tag.Metadata) error

	SentencePause time.Duration
	Log           *slog.Logger
	OnProgress    tts.Progress
}

// NewGenerator creates a Generator with default stages where the zero
// value has one (extraction, packing, tagging). Synthesizer, assembler,
// and encoder must be supplied by the caller.
func NewGenerator(synth tts.Synthesizer, asm *audio.Assembler, enc Encoder, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		Extract:       extract.Extract,
		Packer:        text.NewPacker(),
		Synth:         synth,
		Assembler:     asm,
		Encoder:       enc,
		Tagger:        tag.Write,
		SentencePause: ssml.DefaultSentencePause,
		Log:           log,
	}
}

// Generate runs the full flow. On context cancellation the segments that
// finished are still assembled and encoded, and the context error is
// returned alongside the partial result.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	var res Result

	raw, err := g.Extract(req.InputPath)
	if err != nil {
		return res, err
	}

	segments := g.Packer.Pack(raw, req.MaxChunkBytes)
	if len(segments) == 0 {
		return res, fmt.Errorf("%w: %s", extract.ErrEmptyInput, req.InputPath)
	}
	if req.Preview && len(segments) > PreviewSegments {
		segments = segments[:PreviewSegments]
	}
	res.Segments = len(segments)
	res.Chapters = countChapters(segments)

	g.Log.Info("packed input",
		"segments", res.Segments,
		"chapters", res.Chapters,
		"preview", req.Preview)

	audios, failed, synthErr := tts.SynthesizeAll(
		ctx, segments, g.Synth, req.Voice, g.SentencePause, req.Parallel, g.OnProgress)
	res.Warnings += failed
	if failed > 0 {
		g.Log.Warn("some segments failed synthesis", "failed", failed, "total", len(segments))
	}

	if req.SplitChapters {
		err = g.writeChapters(ctx, audios, req, &res)
	} else {
		err = g.writeSingle(ctx, audios, req, &res)
	}
	if err != nil {
		// A canceled run that left nothing to assemble reports the
		// cancellation, not the empty-assembly consequence.
		if synthErr != nil {
			return res, synthErr
		}
		return res, err
	}

	// Cancellation surfaces after partial output is written.
	return res, synthErr
}

// writeSingle assembles everything into one MP3 at req.OutputPath.
func (g *Generator) writeSingle(ctx context.Context, audios []tts.SegmentAudio, req Request, res *Result) error {
	track, skipped, err := g.Assembler.Assemble(audios, true)
	if err != nil {
		return err
	}
	res.Warnings += skipped

	if err := g.encodeTrack(ctx, track, req.OutputPath); err != nil {
		return err
	}
	if err := g.Tagger(req.OutputPath, req.Meta); err != nil {
		return err
	}

	res.OutputFiles = append(res.OutputFiles, req.OutputPath)
	res.Duration += track.Duration()
	return nil
}

// writeChapters assembles and encodes one MP3 per chapter, named
// <prefix>_NN.mp3 under req.OutputDir.
func (g *Generator) writeChapters(ctx context.Context, audios []tts.SegmentAudio, req Request, res *Result) error {
	chapters, err := g.Assembler.AssemblePerChapter(audios)
	if err != nil {
		return err
	}

	for _, ch := range chapters {
		res.Warnings += ch.Skipped

		name := fmt.Sprintf("%s_%02d.mp3", req.Prefix, ch.Chapter)
		outPath := filepath.Join(req.OutputDir, name)

		if err := g.encodeTrack(ctx, ch.Clip, outPath); err != nil {
			return fmt.Errorf("chapter %d: %w", ch.Chapter, err)
		}

		meta := req.Meta
		if meta.Title != "" {
			meta.Title = fmt.Sprintf("%s - Chapter %d", meta.Title, ch.Chapter)
		}
		if err := g.Tagger(outPath, meta); err != nil {
			return fmt.Errorf("chapter %d: %w", ch.Chapter, err)
		}

		res.OutputFiles = append(res.OutputFiles, outPath)
		res.Duration += ch.Clip.Duration()
	}
	return nil
}

// encodeTrack writes the clip to a temporary WAV next to the output and
// runs the encoder on it.
func (g *Generator) encodeTrack(ctx context.Context, track audio.Clip, mp3Path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(mp3Path), ".audiobook-*.wav")
	if err != nil {
		return fmt.Errorf("create temp wav: %w", err)
	}
	wavPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(wavPath) }()

	if err := track.WriteWAV(wavPath); err != nil {
		return err
	}
	return g.Encoder.Encode(ctx, wavPath, mp3Path)
}

// countChapters counts distinct chapters in segment order.
func countChapters(segments []text.Segment) int {
	n := 0
	last := -1
	for _, s := range segments {
		if s.Chapter != last {
			n++
			last = s.Chapter
		}
	}
	return n
}
