// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

const defaultMeasureBuf = 4096

// Stats summarises a Source after it was read to the end.
type Stats struct {
	SampleRate int
	Channels   int
	Frames     int
	Duration   time.Duration
	// Peak and RMS are measured on the mono downmix, in [0,1].
	Peak float32
	RMS  float64
}

// PeakDBFS returns the peak level in dB relative to full scale.
// Silence yields -Inf.
func (s Stats) PeakDBFS() float64 {
	if s.Peak <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(float64(s.Peak))
}

// Measure drains src through a MonoMixer and reports its length and level.
// bufSize is the number of frames read per call; when it is not positive
// src.BufSize() is used.
func Measure(src Source, bufSize int) (Stats, error) {
	st := Stats{
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
	}

	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	if bufSize <= 0 {
		bufSize = defaultMeasureBuf
	}

	mono := NewMonoMixer(src)
	buf := make([]float32, bufSize)
	var sumSquares float64

	for {
		n, err := mono.ReadSamples(buf)
		for _, v := range buf[:n] {
			a := float32(math.Abs(float64(v)))
			if a > st.Peak {
				st.Peak = a
			}
			sumSquares += float64(v) * float64(v)
		}
		st.Frames += n

		if err == io.EOF {
			break
		}
		if err != nil {
			return st, fmt.Errorf("measuring source: %w", err)
		}
		if n == 0 {
			break
		}
	}

	if st.Frames > 0 {
		st.RMS = math.Sqrt(sumSquares / float64(st.Frames))
	}
	if st.SampleRate > 0 {
		st.Duration = time.Duration(int64(st.Frames) * int64(time.Second) / int64(st.SampleRate))
	}

	return st, nil
}
