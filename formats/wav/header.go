// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/ttswav/audio"
)

const (
	// HeaderSize is the length of the canonical RIFF/WAVE header.
	HeaderSize = 44

	// MaxDataSize is the largest PCM payload whose RIFF chunk size
	// (36 + data) still fits in 32 bits.
	MaxDataSize = math.MaxUint32 - (HeaderSize - 8)

	fmtChunkSize = 16
	formatPCM    = 1
)

// PutHeader writes the 44-byte header for dataSize bytes of PCM in format f
// into dst. Both size fields are derived from dataSize.
func PutHeader(dst []byte, f audio.Format, dataSize int) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if dataSize < 0 || uint64(dataSize) > MaxDataSize {
		return fmt.Errorf("%w: %d bytes", ErrDataTooLarge, dataSize)
	}
	if len(dst) < HeaderSize {
		return io.ErrShortBuffer
	}

	size := uint32(dataSize)

	// RIFF header (12 bytes)
	copy(dst[0:4], "RIFF")
	binary.LittleEndian.PutUint32(dst[4:8], 36+size)
	copy(dst[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(dst[12:16], "fmt ")
	binary.LittleEndian.PutUint32(dst[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(dst[20:22], formatPCM)
	binary.LittleEndian.PutUint16(dst[22:24], f.Channels)
	binary.LittleEndian.PutUint32(dst[24:28], f.SampleRate)
	binary.LittleEndian.PutUint32(dst[28:32], f.ByteRate())
	binary.LittleEndian.PutUint16(dst[32:34], f.BlockAlign())
	binary.LittleEndian.PutUint16(dst[34:36], f.BitsPerSample)

	// data chunk header (8 bytes)
	copy(dst[36:40], "data")
	binary.LittleEndian.PutUint32(dst[40:44], size)

	return nil
}

// WriteHeader writes the header for dataSize bytes of PCM to w.
func WriteHeader(w io.Writer, f audio.Format, dataSize int) error {
	var header [HeaderSize]byte
	if err := PutHeader(header[:], f, dataSize); err != nil {
		return err
	}

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
