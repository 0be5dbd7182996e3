// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	// ErrInvalidBase64 is returned when the payload is not standard,
	// padded base64. The primitive's own error stays in the chain.
	ErrInvalidBase64 = errors.New("invalid base64 payload")

	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
)
