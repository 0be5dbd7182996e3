// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math/bits"
	"time"
)

// Format describes uncompressed little-endian PCM. The values are caller
// supplied metadata and are never derived from the sample bytes.
type Format struct {
	SampleRate    uint32 // samples per second, per channel
	Channels      uint16
	BitsPerSample uint16
}

// GeminiFormat is the fixed output format of the Gemini TTS models:
// 24kHz, mono, signed 16-bit.
var GeminiFormat = PCM16(24000, 1)

// PCM16 returns a 16-bit Format.
func PCM16(sampleRate uint32, channels uint16) Format {
	return Format{
		SampleRate:    sampleRate,
		Channels:      channels,
		BitsPerSample: 16,
	}
}

// FrameSize is the exact size of one frame in bytes.
func (f Format) FrameSize() int {
	return int(f.Channels) * int(f.BitsPerSample/8)
}

// BlockAlign is the 16-bit block align header field. Frames wider than
// 65535 bytes wrap, as the field does.
func (f Format) BlockAlign() uint16 {
	return uint16(f.FrameSize())
}

// ByteRate is the 32-bit byte rate header field, computed in 64 bits and
// truncated to the field width.
func (f Format) ByteRate() uint32 {
	return uint32(f.bytesPerSecond())
}

func (f Format) bytesPerSecond() uint64 {
	return uint64(f.SampleRate) * uint64(f.FrameSize())
}

// Validate reports whether f can describe a PCM stream.
func (f Format) Validate() error {
	switch {
	case f.SampleRate == 0:
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidFormat)
	case f.Channels == 0:
		return fmt.Errorf("%w: channel count must be positive", ErrInvalidFormat)
	case f.BitsPerSample == 0 || f.BitsPerSample%8 != 0:
		return fmt.Errorf("%w: bits per sample must be a positive multiple of 8, got %d",
			ErrInvalidFormat, f.BitsPerSample)
	}

	return nil
}

// CheckAlignment returns ErrMalformedAudio when n bytes do not hold a whole
// number of frames.
func (f Format) CheckAlignment(n int) error {
	if err := f.Validate(); err != nil {
		return err
	}

	align := f.FrameSize()
	if n%align != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrMalformedAudio, n, align)
	}

	return nil
}

// Frames returns the number of complete frames in n bytes.
func (f Format) Frames(n int) int {
	align := f.FrameSize()
	if align == 0 {
		return 0
	}

	return n / align
}

// Duration returns the playback time of n bytes of PCM in this format.
func (f Format) Duration(n int) time.Duration {
	rate := f.bytesPerSecond()
	if rate == 0 || n <= 0 {
		return 0
	}

	secs := uint64(n) / rate
	rem := uint64(n) % rate

	hi, lo := bits.Mul64(rem, uint64(time.Second))
	frac, _ := bits.Div64(hi, lo, rate)

	return time.Duration(secs)*time.Second + time.Duration(frac)
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d bit", f.SampleRate, f.Channels, f.BitsPerSample)
}
