// SPDX-License-Identifier: EPL-2.0

package gemini

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyText = errors.New("text is empty")

	// ErrInvalidDialog is returned when no line has the "Speaker: text" form.
	ErrInvalidDialog = errors.New("invalid dialog format, use 'SpeakerName: Text' on each line")

	// ErrSpeakerCount is returned when a dialog does not have exactly two
	// speakers.
	ErrSpeakerCount = errors.New("dialogs must have exactly 2 speakers")

	// ErrModelRefused is returned when the model answered with text
	// instead of audio.
	ErrModelRefused = errors.New("model refused")

	// ErrNoAudio is returned when a response carries neither audio nor an
	// explanation.
	ErrNoAudio = errors.New("audio generation failed, no audio data received")

	ErrUnknownVoice    = errors.New("unknown voice")
	ErrUnknownLanguage = errors.New("unknown language")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini: status %d %s: %s", e.StatusCode, e.Status, e.Message)
	}

	return fmt.Sprintf("gemini: status %d: %s", e.StatusCode, e.Message)
}
