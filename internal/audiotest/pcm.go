// SPDX-License-Identifier: EPL-2.0

// Package audiotest generates PCM payloads for tests.
package audiotest

import (
	"encoding/base64"
	"math"

	"github.com/ik5/ttswav/audio"
	"github.com/ik5/ttswav/formats/pcm"
)

// Tone returns frames of a sine wave at freq Hz and the given amplitude,
// encoded as 16-bit little-endian PCM in format f. Every channel carries
// the same signal.
func Tone(f audio.Format, freq, amplitude float64, frames int) []byte {
	channels := int(f.Channels)
	samples := make([]float32, frames*channels)

	for i := range frames {
		t := float64(i) / float64(f.SampleRate)
		v := float32(amplitude * math.Sin(2*math.Pi*freq*t))
		for ch := range channels {
			samples[i*channels+ch] = v
		}
	}

	return pcm.AppendSamples(nil, samples)
}

// Silence returns frames of digital silence in format f.
func Silence(f audio.Format, frames int) []byte {
	return make([]byte, frames*f.FrameSize())
}

// Base64Tone is Tone encoded the way the Gemini API returns audio.
func Base64Tone(f audio.Format, freq, amplitude float64, frames int) string {
	return base64.StdEncoding.EncodeToString(Tone(f, freq, amplitude, frames))
}
