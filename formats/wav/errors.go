// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("not a WAV file")
	ErrUnsupportedWavLayout  = errors.New("unsupported WAV layout")
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
	ErrUnsupportedWavChunks  = errors.New("unsupported WAV chunks")

	// ErrDataTooLarge is returned when the PCM payload does not fit the
	// 32-bit RIFF size fields. RF64 is not supported.
	ErrDataTooLarge = errors.New("PCM data too large for WAV size fields")

	// ErrHeaderMismatch is returned by Verify when a header field disagrees
	// with the file contents.
	ErrHeaderMismatch = errors.New("WAV header does not match contents")
)
