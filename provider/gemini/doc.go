// SPDX-License-Identifier: EPL-2.0

// Package gemini generates speech with the Gemini generateContent REST API.
//
// A Client is constructed explicitly with its API key; there is no package
// level state:
//
//	c := gemini.New(cfg.Gemini.APIKey, gemini.WithLogger(log))
//	payload, err := c.GenerateSingle(ctx, "ආයුබෝවන්", gemini.VoiceKore)
//
// The returned payload is the base64 text of raw 24000 Hz mono 16-bit PCM,
// exactly as sent by the API. Decoding and WAV wrapping are left to the
// caller (see ttswav.NewClip).
//
// GenerateDialog accepts a script with one "Speaker: text" line per turn
// and exactly two speakers. Voices come from WithSpeakerVoices, then from
// the WithDialogVoices pair (Puck and Kore by default).
//
// Failures are reported as ErrEmptyText, ErrInvalidDialog, ErrSpeakerCount,
// ErrModelRefused (the model replied with text), ErrNoAudio (with the
// finish reason) or *APIError for non-2xx answers.
package gemini
