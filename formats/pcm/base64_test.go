// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestDecodeBase64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{"empty", "", []byte{}},
		{"single byte", "QQ==", []byte{0x41}},
		{"two bytes", "QUI=", []byte{0x41, 0x42}},
		{"three bytes", "QUJD", []byte{0x41, 0x42, 0x43}},
		{"pcm samples", "AQACAA==", []byte{0x01, 0x00, 0x02, 0x00}},
		{"high bytes", "//8AgA==", []byte{0xFF, 0xFF, 0x00, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeBase64(tt.input)
			if err != nil {
				t.Fatalf("DecodeBase64(%q) error = %v", tt.input, err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("DecodeBase64(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeBase64_RoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	for size := range 64 {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(rng.IntN(256))
		}

		got, err := DecodeBase64(base64.StdEncoding.EncodeToString(data))
		if err != nil {
			t.Fatalf("size %d: DecodeBase64() error = %v", size, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("size %d: round trip mismatch", size)
		}
	}
}

func TestDecodeBase64_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"bad character", "QQ*="},
		{"missing padding", "QQ"},
		{"too much padding", "QQ==="},
		{"url alphabet", "__8="},
		{"embedded space", "QU JD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeBase64(tt.input)
			if !errors.Is(err, ErrInvalidBase64) {
				t.Fatalf("DecodeBase64(%q) error = %v, want ErrInvalidBase64", tt.input, err)
			}

			var corrupt base64.CorruptInputError
			if !errors.As(err, &corrupt) {
				t.Errorf("DecodeBase64(%q) error does not unwrap to CorruptInputError", tt.input)
			}
			if got != nil {
				t.Errorf("DecodeBase64(%q) = %v, want nil on error", tt.input, got)
			}
		})
	}
}

func TestNewBase64Reader(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte{0x01, 0x00, 0xFF, 0x7F}, 1000)
	r := NewBase64Reader(strings.NewReader(base64.StdEncoding.EncodeToString(data)))

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("NewBase64Reader() produced %d bytes, want %d identical bytes", len(got), len(data))
	}
}

func TestNewBase64Reader_Invalid(t *testing.T) {
	t.Parallel()

	_, err := io.ReadAll(NewBase64Reader(strings.NewReader("QQ*=")))
	if !errors.Is(err, ErrInvalidBase64) {
		t.Errorf("ReadAll() error = %v, want ErrInvalidBase64", err)
	}
}

// BenchmarkDecodeBase64 decodes one second of Gemini audio.
func BenchmarkDecodeBase64(b *testing.B) {
	payload := base64.StdEncoding.EncodeToString(make([]byte, 48000))

	b.ReportAllocs()

	for b.Loop() {
		_, _ = DecodeBase64(payload)
	}
}
