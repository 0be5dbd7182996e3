// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/ttswav/audio"
)

const defaultBufSize = 4096

// source reads interleaved signed 16-bit little-endian samples.
type source struct {
	r          io.Reader
	sampleRate int
	channels   int
	buf        []byte
	eof        bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.r, s.buf)
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		s.eof = true
	case err != nil:
		return 0, fmt.Errorf("%w", err)
	}

	// A dangling odd byte at the end of the stream is dropped.
	samples := n / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i : 2*i+2]))
		dst[i] = float32(v) / 32768.0
	}

	if s.eof {
		return samples, io.EOF
	}

	return samples, nil
}

// Decoder reads headerless PCM. The stream carries no metadata so Format
// must describe it.
type Decoder struct {
	Format audio.Format
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	if err := d.Format.Validate(); err != nil {
		return nil, err
	}
	if d.Format.BitsPerSample != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	return &source{
		r:          r,
		sampleRate: int(d.Format.SampleRate),
		channels:   int(d.Format.Channels),
		buf:        make([]byte, defaultBufSize*2),
	}, nil
}
