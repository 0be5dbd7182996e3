// SPDX-License-Identifier: EPL-2.0

// Package pcm handles headerless PCM as delivered by speech synthesis APIs.
//
// TTS services such as Gemini return audio as a base64 string holding raw,
// signed 16-bit little-endian samples. This package turns that text back into
// bytes and exposes raw PCM as an audio.Source.
//
// # Decoding Base64
//
//	raw, err := pcm.DecodeBase64(payload)
//	if errors.Is(err, pcm.ErrInvalidBase64) {
//	    // not standard padded base64
//	}
//
// The underlying encoding/base64 error is kept in the chain, so
// errors.As(err, new(base64.CorruptInputError)) reports the offending offset.
//
// For large payloads NewBase64Reader decodes while reading:
//
//	r := pcm.NewBase64Reader(strings.NewReader(payload))
//
// # Reading Samples
//
// Raw PCM carries no metadata, so the Decoder needs the format up front:
//
//	dec := pcm.Decoder{Format: audio.GeminiFormat}
//	src, _ := dec.Decode(bytes.NewReader(raw))
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Samples are returned as float32 in [-1.0, 1.0). Only 16-bit samples are
// supported; a trailing odd byte is ignored.
package pcm
