// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/ik5/ttswav/audio"
)

// Int16 converts a sample in [-1, 1] to signed 16-bit. Values outside the
// range are clamped. It is the inverse of the scaling used by Decoder.
func Int16(x float32) int16 {
	v := math.Round(float64(x) * 32768)

	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}

	return int16(v)
}

// AppendSamples appends samples to dst as 16-bit little-endian PCM.
func AppendSamples(dst []byte, samples []float32) []byte {
	dst = slices.Grow(dst, len(samples)*2)
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(Int16(s)))
	}

	return dst
}

// Encode drains src and returns its samples as interleaved 16-bit
// little-endian PCM together with the stream format. A read that returns
// no samples and no error ends the stream.
func Encode(src audio.Source) ([]byte, audio.Format, error) {
	f := audio.PCM16(uint32(src.SampleRate()), uint16(src.Channels()))
	if err := f.Validate(); err != nil {
		return nil, f, err
	}

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = defaultBufSize
	}
	buf := make([]float32, bufSize)

	var out []byte
	for {
		n, err := src.ReadSamples(buf)
		out = AppendSamples(out, buf[:n])

		if errors.Is(err, io.EOF) {
			return out, f, nil
		}
		if err != nil {
			return out, f, fmt.Errorf("encoding samples: %w", err)
		}
		if n == 0 {
			return out, f, nil
		}
	}
}
