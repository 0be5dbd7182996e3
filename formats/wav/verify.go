// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ik5/ttswav/audio"
)

// Info describes a parsed WAV file.
type Info struct {
	Format   audio.Format
	DataSize int
	Duration time.Duration
}

// Verify parses data with a general purpose WAV decoder and checks that the
// derived header fields agree with the file.
func Verify(data []byte) (Info, error) {
	dec, err := open(bytes.NewReader(data))
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Format: audio.Format{
			SampleRate:    dec.SampleRate,
			Channels:      dec.NumChans,
			BitsPerSample: dec.BitDepth,
		},
		DataSize: dec.PCMSize,
	}
	info.Duration = info.Format.Duration(info.DataSize)

	if riffSize := binary.LittleEndian.Uint32(data[4:8]); int64(riffSize) != int64(len(data))-8 {
		return info, fmt.Errorf("%w: RIFF size %d for %d bytes", ErrHeaderMismatch, riffSize, len(data))
	}
	if dec.AvgBytesPerSec != info.Format.ByteRate() {
		return info, fmt.Errorf("%w: byte rate %d, want %d", ErrHeaderMismatch, dec.AvgBytesPerSec, info.Format.ByteRate())
	}
	if info.DataSize > len(data)-HeaderSize {
		return info, fmt.Errorf("%w: data size %d exceeds file", ErrHeaderMismatch, info.DataSize)
	}

	return info, nil
}
