// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// sliceSource plays back interleaved samples. chunk limits the samples
// returned per call (0 means no limit) and loop restarts at the end instead
// of reporting io.EOF.
type sliceSource struct {
	rate     int
	channels int
	samples  []float32
	pos      int
	chunk    int
	loop     bool
	closeErr error
	closed   bool
}

func newSliceSource(rate, channels int, samples []float32) *sliceSource {
	return &sliceSource{rate: rate, channels: channels, samples: samples}
}

// constantSource holds value on every channel for frames frames.
func constantSource(rate, channels, frames int, value float32) *sliceSource {
	samples := make([]float32, frames*channels)
	for i := range samples {
		samples[i] = value
	}
	return newSliceSource(rate, channels, samples)
}

// sineSource is a full scale mono sine wave.
func sineSource(rate, frames int, freq float64) *sliceSource {
	samples := make([]float32, frames)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	}
	return newSliceSource(rate, 1, samples)
}

func (s *sliceSource) SampleRate() int { return s.rate }
func (s *sliceSource) Channels() int   { return s.channels }
func (s *sliceSource) BufSize() int    { return 1024 }

func (s *sliceSource) Close() error {
	s.closed = true
	return s.closeErr
}

func (s *sliceSource) ReadSamples(dst []float32) (int, error) {
	if s.loop && s.pos >= len(s.samples) {
		s.pos = 0
	}

	want := len(dst) - len(dst)%s.channels
	if s.chunk > 0 {
		want = min(want, s.chunk)
	}

	n := copy(dst[:want], s.samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.samples) && !s.loop {
		return n, io.EOF
	}

	return n, nil
}
