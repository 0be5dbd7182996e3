// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"slices"
	"testing"
)

func readMono(t *testing.T, m *MonoMixer, bufSize int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, bufSize)
	for {
		n, err := m.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestMonoMixer_Passthrough(t *testing.T) {
	t.Parallel()

	samples := []float32{0.1, -0.2, 0.3, -0.4, 0.5}
	m := NewMonoMixer(newSliceSource(24000, 1, slices.Clone(samples)))

	if got := readMono(t, m, 2); !slices.Equal(got, samples) {
		t.Errorf("ReadSamples() = %v, want %v", got, samples)
	}
}

func TestMonoMixer_Average(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
		want     []float32
	}{
		{"stereo", 2, []float32{0.2, 0.4, -1, 1}, []float32{0.3, 0}},
		{"three channels", 3, []float32{0.3, 0.6, 0.9}, []float32{0.6}},
		{"quad", 4, []float32{1, 1, 1, 1, -0.5, -0.5, 0, 0}, []float32{1, -0.25}},
		{"partial frame dropped", 2, []float32{0.5, 0.5, 0.9}, []float32{0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewMonoMixer(newSliceSource(8000, tt.channels, tt.samples))
			got := readMono(t, m, 16)

			if len(got) != len(tt.want) {
				t.Fatalf("ReadSamples() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
					t.Errorf("frame %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMonoMixer_ChunkedSource(t *testing.T) {
	t.Parallel()

	src := constantSource(16000, 2, 1000, 0.25)
	src.chunk = 6 // three stereo frames per call

	got := readMono(t, NewMonoMixer(src), 64)

	if len(got) != 1000 {
		t.Fatalf("frames = %d, want 1000", len(got))
	}
	for i, v := range got {
		if v != 0.25 {
			t.Fatalf("frame %d = %v, want 0.25", i, v)
		}
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	m := NewMonoMixer(constantSource(8000, 2, 3, 0.5))
	buf := make([]float32, 8)

	n, err := m.ReadSamples(buf)
	if n != 3 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = (%d, %v), want (3, EOF)", n, err)
	}

	n, err = m.ReadSamples(buf)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestMonoMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	m := NewMonoMixer(constantSource(8000, 2, 10, 1))

	n, err := m.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestMonoMixer_Metadata(t *testing.T) {
	t.Parallel()

	src := constantSource(44100, 6, 1, 0)
	m := NewMonoMixer(src)

	if m.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", m.SampleRate())
	}
	if m.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", m.Channels())
	}
	if m.BufSize() != src.BufSize() {
		t.Errorf("BufSize() = %d, want %d", m.BufSize(), src.BufSize())
	}
}

func TestMonoMixer_Close(t *testing.T) {
	t.Parallel()

	src := constantSource(8000, 2, 1, 0)
	if err := NewMonoMixer(src).Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !src.closed {
		t.Error("Close() did not close the source")
	}

	errGone := errors.New("gone")
	src = constantSource(8000, 2, 1, 0)
	src.closeErr = errGone
	if err := NewMonoMixer(src).Close(); !errors.Is(err, errGone) {
		t.Errorf("Close() error = %v, want %v", err, errGone)
	}
}

func TestMonoMixer_NoAllocsAfterWarmup(t *testing.T) {
	src := constantSource(24000, 2, 4096, 0.1)
	src.loop = true
	m := NewMonoMixer(src)
	buf := make([]float32, 512)

	_, _ = m.ReadSamples(buf)

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = m.ReadSamples(buf)
	})
	if allocs != 0 {
		t.Errorf("ReadSamples() allocs = %v, want 0", allocs)
	}
}

func BenchmarkMonoMixer_Stereo(b *testing.B) {
	src := constantSource(24000, 2, 24000, 0.1)
	src.loop = true
	m := NewMonoMixer(src)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = m.ReadSamples(buf)
	}
}
