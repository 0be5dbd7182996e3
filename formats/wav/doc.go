// SPDX-License-Identifier: EPL-2.0

// Package wav builds and reads canonical RIFF/WAVE files holding
// uncompressed PCM.
//
// # Building
//
// Build prepends the 44-byte header to raw little-endian PCM:
//
//	pcm, _ := pcm.DecodeBase64(payload)
//	file, err := wav.Build(pcm, 24000, 1)
//
// Header size fields are derived only from len(pcm). The input is never
// validated for frame alignment; use audio.Format.CheckAlignment when that
// matters. Payloads over MaxDataSize fail with ErrDataTooLarge since the
// RIFF size fields are 32 bit.
//
// PutHeader, WriteHeader and WritePCM expose the same layout for callers
// that manage their own buffers or stream to an io.Writer. WriteWAV16
// encodes int16 samples directly.
//
// # Reading
//
// Decoder returns an audio.Source over 16-bit PCM files, with samples as
// float32 in [-1.0, 1.0]. Parsing is done by github.com/go-audio/wav, so
// chunks other than fmt and data are skipped. Verify parses a whole file
// and checks that its size and rate fields are consistent.
package wav
