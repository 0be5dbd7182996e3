// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/ttswav/audio"
)

// WriteWAV16 writes interleaved int16 samples as a 16-bit PCM WAV file.
// f.BitsPerSample must be 16.
func WriteWAV16(w io.Writer, f audio.Format, samples []int16) error {
	if f.BitsPerSample != 16 {
		return ErrOnlyPCM16bitSupported
	}

	if err := WriteHeader(w, f, len(samples)*2); err != nil {
		return err
	}

	const chunkSize = 8192 // samples per write
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		buf = buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(buf[j*2:j*2+2], uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
