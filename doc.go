// SPDX-License-Identifier: EPL-2.0

// Package ttswav turns the base64 PCM returned by text-to-speech APIs into
// playable WAV files.
//
// The work is split into two pure steps that can be used on their own:
//   - formats/pcm decodes the base64 payload into raw little-endian PCM
//   - formats/wav prepends the 44-byte RIFF/WAVE header
//
// NewClip runs both and wraps the result in a Clip that knows its media
// type and download name:
//
//	text, _ := client.GenerateSingle(ctx, "ආයුබෝවන්", gemini.VoicePuck)
//	clip, err := ttswav.NewClip(text, audio.GeminiFormat)
//	if err != nil {
//	    // pcm.ErrInvalidBase64, audio.ErrMalformedAudio, wav.ErrDataTooLarge
//	}
//	path, err := clip.Save("out")
//
// # Format
//
// Gemini TTS returns 24000 Hz mono 16-bit audio; audio.GeminiFormat holds
// those values. The payload carries no header, so the format must be known
// to the caller.
//
// # Alignment
//
// By default the PCM length is not checked against the frame size and a
// trailing partial frame is written as is. WithStrict rejects such payloads
// with audio.ErrMalformedAudio.
//
// # Subpackages
//
//   - audio: Format, Source pipeline, decoder Registry, level statistics
//   - formats/pcm: base64 and raw PCM decoding, PCM encoding
//   - formats/wav: WAV building, reading and verification
//   - provider/gemini: client for the Gemini speech generation API
package ttswav
