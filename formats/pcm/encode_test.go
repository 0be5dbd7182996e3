// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/ttswav/audio"
)

func TestInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0.0, 0},
		{"max positive", 1.0, math.MaxInt16},
		{"max negative", -1.0, math.MinInt16},
		{"half positive", 0.5, 16384},
		{"half negative", -0.5, -16384},
		{"small positive", 0.001, 33},
		{"small negative", -0.001, -33},
		{"clamp over max", 1.5, math.MaxInt16},
		{"clamp under min", -1.5, math.MinInt16},
		{"infinity", float32(math.Inf(1)), math.MaxInt16},
		{"negative infinity", float32(math.Inf(-1)), math.MinInt16},
		{"nan", float32(math.NaN()), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Int16(tt.input); got != tt.want {
				t.Errorf("Int16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestInt16_Monotonic(t *testing.T) {
	t.Parallel()

	prev := Int16(-1.0)
	for i := -999; i <= 1000; i++ {
		cur := Int16(float32(i) / 1000)
		if cur < prev {
			t.Fatalf("Int16(%v) = %d < %d", float32(i)/1000, cur, prev)
		}
		prev = cur
	}
}

// Every int16 survives a trip through the decoder scaling.
func TestInt16_InverseOfDecoder(t *testing.T) {
	t.Parallel()

	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		x := float32(v) / 32768.0
		if got := Int16(x); got != int16(v) {
			t.Fatalf("Int16(%d/32768) = %d", v, got)
		}
	}
}

func TestAppendSamples(t *testing.T) {
	t.Parallel()

	got := AppendSamples([]byte{0xAA}, []float32{0, 0.5, -1})
	want := append([]byte{0xAA}, pcmBytes(0, 16384, -32768)...)

	if !bytes.Equal(got, want) {
		t.Errorf("AppendSamples() = % x, want % x", got, want)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	raw := pcmBytes(0, 1, -1, 1000, -1000, math.MaxInt16, math.MinInt16)

	src, err := Decoder{Format: audio.PCM16(24000, 1)}.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got, f, err := Encode(src)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if f != audio.GeminiFormat {
		t.Errorf("format = %v, want %v", f, audio.GeminiFormat)
	}
	if !bytes.Equal(got, raw) {
		t.Errorf("Encode() = % x, want % x", got, raw)
	}
}

type errSource struct{}

var errSourceRead = errors.New("read failed")

func (errSource) SampleRate() int                    { return 8000 }
func (errSource) Channels() int                      { return 1 }
func (errSource) BufSize() int                       { return 0 }
func (errSource) Close() error                       { return nil }
func (errSource) ReadSamples([]float32) (int, error) { return 0, errSourceRead }

func TestEncode_ReadError(t *testing.T) {
	t.Parallel()

	if _, _, err := Encode(errSource{}); !errors.Is(err, errSourceRead) {
		t.Errorf("Encode() error = %v, want errSourceRead", err)
	}
	if _, _, err := Encode(errSource{}); errors.Is(err, io.EOF) {
		t.Error("Encode() error matches io.EOF")
	}
}

// stalledSource returns its samples once, then (0, nil) forever.
type stalledSource struct {
	samples []float32
	done    bool
}

func (s *stalledSource) SampleRate() int { return 24000 }
func (s *stalledSource) Channels() int   { return 1 }
func (s *stalledSource) BufSize() int    { return 16 }
func (s *stalledSource) Close() error    { return nil }

func (s *stalledSource) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, nil
	}
	s.done = true
	return copy(dst, s.samples), nil
}

func TestEncode_StalledSource(t *testing.T) {
	t.Parallel()

	src := &stalledSource{samples: []float32{0.5, -0.5}}

	got, _, err := Encode(src)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if want := []byte{0x00, 0x40, 0x00, 0xC0}; !bytes.Equal(got, want) {
		t.Errorf("Encode() = % x, want % x", got, want)
	}
}

func BenchmarkAppendSamples(b *testing.B) {
	samples := make([]float32, 24000)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(i) / 10))
	}
	dst := make([]byte, 0, len(samples)*2)

	b.ReportAllocs()

	for b.Loop() {
		dst = AppendSamples(dst[:0], samples)
	}
}
