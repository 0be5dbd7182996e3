// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/base64"
	"fmt"
	"io"
)

// DecodeBase64 returns the bytes encoded by text using the standard alphabet
// with '=' padding.
func DecodeBase64(text string) ([]byte, error) {
	out, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBase64, err)
	}

	return out, nil
}

// NewBase64Reader streams the bytes encoded by the base64 text read from r.
func NewBase64Reader(r io.Reader) io.Reader {
	return &base64Reader{dec: base64.NewDecoder(base64.StdEncoding, r)}
}

type base64Reader struct {
	dec io.Reader
}

func (b *base64Reader) Read(p []byte) (int, error) {
	n, err := b.dec.Read(p)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w: %w", ErrInvalidBase64, err)
	}

	return n, err
}
