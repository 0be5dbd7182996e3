// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages the interleaved frames of a Source into one channel.
// Mono sources pass through untouched.
type MonoMixer struct {
	src     Source
	scratch []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("closing mixed source: %w", err)
	}

	return nil
}

// ReadSamples fills dst with up to len(dst) mono frames. A trailing partial
// frame from the source is dropped.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	ch := m.src.Channels()
	if ch <= 1 {
		return m.src.ReadSamples(dst)
	}
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) * ch
	if cap(m.scratch) < want {
		m.scratch = make([]float32, want)
	}
	in := m.scratch[:want]

	n, err := m.src.ReadSamples(in)
	frames := n / ch
	scale := 1 / float32(ch)

	for i := range frames {
		var sum float32
		for _, v := range in[i*ch : (i+1)*ch] {
			sum += v
		}
		dst[i] = sum * scale
	}

	return frames, err
}
