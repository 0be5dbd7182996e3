// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/ik5/ttswav/audio"
)

const (
	// MediaType is the MIME type of the files produced by this package.
	MediaType = "audio/wav"

	// DefaultFileName is the name offered when a clip is downloaded.
	DefaultFileName = "sinhala_audio.wav"
)

// Build wraps raw signed 16-bit little-endian PCM in a WAV container.
// The result is a new slice of 44+len(pcm) bytes; pcm is not retained.
//
// The length of pcm is not checked against the frame size. Use
// audio.Format.CheckAlignment first when a truncated last frame must be
// rejected.
func Build(pcm []byte, sampleRate uint32, channels uint16) ([]byte, error) {
	return BuildFormat(pcm, audio.PCM16(sampleRate, channels))
}

// BuildFormat is Build with an explicit bit depth.
func BuildFormat(pcm []byte, f audio.Format) ([]byte, error) {
	var header [HeaderSize]byte
	if err := PutHeader(header[:], f, len(pcm)); err != nil {
		return nil, err
	}

	out := make([]byte, HeaderSize+len(pcm))
	copy(out, header[:])
	copy(out[HeaderSize:], pcm)

	return out, nil
}

// WritePCM streams a complete WAV file holding pcm to w.
func WritePCM(w io.Writer, f audio.Format, pcm []byte) error {
	if err := WriteHeader(w, f, len(pcm)); err != nil {
		return err
	}

	if len(pcm) == 0 {
		return nil
	}

	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
