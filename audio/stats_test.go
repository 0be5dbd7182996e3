// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestMeasure_Constant(t *testing.T) {
	t.Parallel()

	src := constantSource(24000, 1, 24000, 0.5)

	st, err := Measure(src, 1024)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	if st.Frames != 24000 {
		t.Errorf("Frames = %d, want 24000", st.Frames)
	}
	if st.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", st.Duration)
	}
	if st.Peak != 0.5 {
		t.Errorf("Peak = %v, want 0.5", st.Peak)
	}
	if math.Abs(st.RMS-0.5) > 1e-6 {
		t.Errorf("RMS = %v, want 0.5", st.RMS)
	}
	if math.Abs(st.PeakDBFS()-(-6.0206)) > 0.001 {
		t.Errorf("PeakDBFS() = %v, want ≈-6.02", st.PeakDBFS())
	}
}

func TestMeasure_StereoDownmix(t *testing.T) {
	t.Parallel()

	// Opposite channels cancel in the downmix.
	samples := make([]float32, 1600)
	for i := range samples {
		samples[i] = 0.8
		if i%2 == 1 {
			samples[i] = -0.8
		}
	}
	src := newSliceSource(8000, 2, samples)

	st, err := Measure(src, 0)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	if st.Channels != 2 {
		t.Errorf("Channels = %d, want 2", st.Channels)
	}
	if st.Frames != 800 {
		t.Errorf("Frames = %d, want 800", st.Frames)
	}
	if st.Peak != 0 {
		t.Errorf("Peak = %v, want 0", st.Peak)
	}
	if !math.IsInf(st.PeakDBFS(), -1) {
		t.Errorf("PeakDBFS() = %v, want -Inf", st.PeakDBFS())
	}
}

func TestMeasure_Sine(t *testing.T) {
	t.Parallel()

	src := sineSource(24000, 24000, 440)

	st, err := Measure(src, 512)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	if st.Peak < 0.99 || st.Peak > 1.0 {
		t.Errorf("Peak = %v, want ≈1", st.Peak)
	}
	if math.Abs(st.RMS-1/math.Sqrt2) > 0.01 {
		t.Errorf("RMS = %v, want ≈%v", st.RMS, 1/math.Sqrt2)
	}
}

func TestMeasure_Empty(t *testing.T) {
	t.Parallel()

	st, err := Measure(newSliceSource(24000, 1, nil), 64)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if st.Frames != 0 || st.Duration != 0 || st.RMS != 0 {
		t.Errorf("Measure(empty) = %+v, want zero counters", st)
	}
}

type brokenSource struct{ sliceSource }

var errBroken = errors.New("device unplugged")

func (b *brokenSource) ReadSamples(dst []float32) (int, error) { return 0, errBroken }

func TestMeasure_SourceError(t *testing.T) {
	t.Parallel()

	src := &brokenSource{sliceSource{rate: 8000, channels: 1, samples: make([]float32, 10)}}

	_, err := Measure(src, 16)
	if !errors.Is(err, errBroken) {
		t.Errorf("Measure() error = %v, want wrapped errBroken", err)
	}
}
