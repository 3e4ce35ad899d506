package tts

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-audiobook/internal/ssml"
	"github.com/alnah/go-audiobook/internal/text"
)

// Concurrency bounds for synthesis requests.
const (
	// DefaultParallel is the number of concurrent requests when the
	// caller does not specify one.
	DefaultParallel = 4

	// MaxRecommendedParallel caps concurrency; provider rate limits make
	// higher values counterproductive.
	MaxRecommendedParallel = 10
)

// SegmentAudio pairs one synthesized segment with its position in the
// book. Data is empty when synthesis failed for that segment.
type SegmentAudio struct {
	Chapter   int
	Paragraph int
	Data      []byte
}

// Progress is called after each segment completes, successful or not.
// done counts completed segments, total is the batch size. Calls may
// arrive from concurrent workers.
type Progress func(done, total int, seg text.Segment, err error)

// SynthesizeAll synthesizes segments concurrently while preserving book
// order in the result slice. Per-segment failures do not abort the batch;
// failed segments keep empty Data and the failure count is returned.
//
// On context cancellation no new requests are issued, but requests already
// in flight run to completion (or their own timeout) so partial results
// can still be assembled. The context error is returned alongside whatever
// finished.
func SynthesizeAll(
	ctx context.Context,
	segments []text.Segment,
	s Synthesizer,
	opts Options,
	sentencePause time.Duration,
	maxParallel int,
	onProgress Progress,
) ([]SegmentAudio, int, error) {
	if len(segments) == 0 {
		return nil, 0, nil
	}
	if maxParallel <= 0 {
		maxParallel = DefaultParallel
	}

	// Pre-fill positions so order is fixed regardless of completion order.
	results := make([]SegmentAudio, len(segments))
	for i, seg := range segments {
		results[i] = SegmentAudio{Chapter: seg.Chapter, Paragraph: seg.Paragraph}
	}

	var (
		g         errgroup.Group
		sem       = make(chan struct{}, maxParallel)
		completed atomic.Int64
		failed    atomic.Int64
	)

	// Requests already accepted keep their own uncancelable context so
	// cancellation drains in-flight work instead of dropping it. Each
	// provider call still enforces its own timeout.
	callCtx := context.WithoutCancel(ctx)

	total := len(segments)

	for i, seg := range segments {
		i, seg := i, seg
		// Stop issuing new work once the run is canceled. The error check
		// comes first so a canceled context never admits another segment.
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			_ = g.Wait()
			return results, int(failed.Load()), ctx.Err()
		case sem <- struct{}{}:
		}

		g.Go(func() error {
			defer func() { <-sem }()

			markup := ssml.Build(seg.Text, sentencePause)
			data, err := s.Synthesize(callCtx, markup, opts)
			if err == nil {
				results[i].Data = data
			} else {
				failed.Add(1)
			}

			if onProgress != nil {
				onProgress(int(completed.Add(1)), total, seg, err)
			}
			return nil
		})
	}

	_ = g.Wait()
	return results, int(failed.Load()), ctx.Err()
}
