// Package audio assembles synthesized segments into finished tracks:
// decoding, loudness normalization, pause insertion, fades, and WAV
// output for the encoder. Samples are 16-bit PCM held as ints, the
// representation the WAV codec uses.
package audio

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// fullScale is the peak amplitude of 16-bit PCM.
const fullScale = 32768.0

// Clip holds PCM samples. Stereo samples are interleaved.
type Clip struct {
	Samples    []int
	SampleRate int
	Channels   int
}

// Duration returns the clip length.
func (c Clip) Duration() time.Duration {
	if c.SampleRate <= 0 || c.Channels <= 0 {
		return 0
	}
	frames := len(c.Samples) / c.Channels
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// DecodeWAV parses a WAV payload into a Clip.
func DecodeWAV(data []byte) (Clip, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return Clip{}, fmt.Errorf("%w: not a wav file", ErrDecode)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return Clip{}, fmt.Errorf("%w: empty pcm payload", ErrDecode)
	}

	return Clip{
		Samples:    buf.Data,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}, nil
}

// WriteWAV writes the clip as a 16-bit PCM WAV file.
func (c Clip) WriteWAV(path string) error {
	f, err := os.Create(path) // #nosec G304 -- output path comes from the caller
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}

	enc := wav.NewEncoder(f, c.SampleRate, 16, c.Channels, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: c.Channels, SampleRate: c.SampleRate},
		Data:           c.Samples,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("write wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize wav file: %w", err)
	}
	return f.Close()
}

// DBFS returns the RMS level relative to full scale, in dB.
// A silent clip returns negative infinity.
func (c Clip) DBFS() float64 {
	if len(c.Samples) == 0 {
		return math.Inf(-1)
	}
	var sum float64
	for _, s := range c.Samples {
		v := float64(s)
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(len(c.Samples)))
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms/fullScale)
}

// Gain applies a dB gain, clamping to the 16-bit range.
func (c Clip) Gain(db float64) Clip {
	factor := math.Pow(10, db/20)
	out := make([]int, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = clamp16(float64(s) * factor)
	}
	return Clip{Samples: out, SampleRate: c.SampleRate, Channels: c.Channels}
}

// Normalize applies the gain that brings the RMS level to targetDBFS.
// Silent clips are returned unchanged.
func (c Clip) Normalize(targetDBFS float64) Clip {
	current := c.DBFS()
	if math.IsInf(current, -1) {
		return c
	}
	return c.Gain(targetDBFS - current)
}

// FadeIn applies a linear ramp from silence over d.
func (c Clip) FadeIn(d time.Duration) Clip {
	return c.fade(d, true)
}

// FadeOut applies a linear ramp to silence over the final d.
func (c Clip) FadeOut(d time.Duration) Clip {
	return c.fade(d, false)
}

func (c Clip) fade(d time.Duration, in bool) Clip {
	if c.SampleRate <= 0 || c.Channels <= 0 || len(c.Samples) == 0 {
		return c
	}

	frames := len(c.Samples) / c.Channels
	fadeFrames := int(d.Seconds() * float64(c.SampleRate))
	if fadeFrames > frames {
		fadeFrames = frames
	}
	if fadeFrames <= 0 {
		return c
	}

	out := make([]int, len(c.Samples))
	copy(out, c.Samples)

	for f := 0; f < fadeFrames; f++ {
		factor := float64(f) / float64(fadeFrames)
		frame := f
		if !in {
			// Ramp down over the tail: last frame is quietest.
			frame = frames - 1 - f
		}
		for ch := 0; ch < c.Channels; ch++ {
			idx := frame*c.Channels + ch
			out[idx] = clamp16(float64(out[idx]) * factor)
		}
	}
	return Clip{Samples: out, SampleRate: c.SampleRate, Channels: c.Channels}
}

// Silence creates a silent clip of duration d.
func Silence(d time.Duration, sampleRate, channels int) Clip {
	frames := int(d.Seconds() * float64(sampleRate))
	return Clip{
		Samples:    make([]int, frames*channels),
		SampleRate: sampleRate,
		Channels:   channels,
	}
}

// Convert resamples the clip to the given rate and channel count.
// Resampling is nearest-frame, adequate for speech at close rates.
func (c Clip) Convert(sampleRate, channels int) Clip {
	out := c
	if channels > 0 && channels != out.Channels {
		out = out.convertChannels(channels)
	}
	if sampleRate > 0 && sampleRate != out.SampleRate {
		out = out.resample(sampleRate)
	}
	return out
}

func (c Clip) convertChannels(channels int) Clip {
	frames := len(c.Samples) / c.Channels
	out := make([]int, frames*channels)

	for f := 0; f < frames; f++ {
		switch {
		case c.Channels == 1 && channels == 2:
			out[f*2] = c.Samples[f]
			out[f*2+1] = c.Samples[f]
		case c.Channels == 2 && channels == 1:
			out[f] = (c.Samples[f*2] + c.Samples[f*2+1]) / 2
		default:
			// Copy the first channel, zero-fill the rest.
			for ch := 0; ch < channels; ch++ {
				if ch < c.Channels {
					out[f*channels+ch] = c.Samples[f*c.Channels+ch]
				}
			}
		}
	}
	return Clip{Samples: out, SampleRate: c.SampleRate, Channels: channels}
}

func (c Clip) resample(rate int) Clip {
	if c.SampleRate <= 0 {
		return c
	}
	srcFrames := len(c.Samples) / c.Channels
	dstFrames := int(float64(srcFrames) * float64(rate) / float64(c.SampleRate))
	out := make([]int, dstFrames*c.Channels)

	for f := 0; f < dstFrames; f++ {
		src := f * c.SampleRate / rate
		if src >= srcFrames {
			src = srcFrames - 1
		}
		for ch := 0; ch < c.Channels; ch++ {
			out[f*c.Channels+ch] = c.Samples[src*c.Channels+ch]
		}
	}
	return Clip{Samples: out, SampleRate: rate, Channels: c.Channels}
}

// Concat joins clips in order. All clips must share rate and channels;
// callers convert first.
func Concat(clips ...Clip) Clip {
	if len(clips) == 0 {
		return Clip{}
	}

	total := 0
	for _, c := range clips {
		total += len(c.Samples)
	}

	out := Clip{
		Samples:    make([]int, 0, total),
		SampleRate: clips[0].SampleRate,
		Channels:   clips[0].Channels,
	}
	for _, c := range clips {
		out.Samples = append(out.Samples, c.Samples...)
	}
	return out
}

func clamp16(v float64) int {
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int(math.Round(v))
	}
}
