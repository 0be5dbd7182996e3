// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidFormat  = errors.New("invalid audio format")
	ErrMalformedAudio = errors.New("pcm length not aligned to frame size")
	ErrUnknownFormat  = errors.New("no decoder registered for format")
)
