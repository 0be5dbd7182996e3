// SPDX-License-Identifier: EPL-2.0

package gemini

import (
	"fmt"
	"slices"
	"strings"
)

// Voice is a prebuilt Gemini voice name.
type Voice string

const (
	VoicePuck   Voice = "Puck"
	VoiceKore   Voice = "Kore"
	VoiceZephyr Voice = "Zephyr"
	VoiceCharon Voice = "Charon"
	VoiceFenrir Voice = "Fenrir"
)

// Voices lists the voices offered to users.
var Voices = []Voice{VoicePuck, VoiceKore, VoiceZephyr, VoiceCharon, VoiceFenrir}

// ParseVoice matches name against Voices, ignoring case.
func ParseVoice(name string) (Voice, error) {
	for _, v := range Voices {
		if strings.EqualFold(string(v), name) {
			return v, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownVoice, name)
}

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// VoiceProfile is a voice as presented for a language.
type VoiceProfile struct {
	ID     Voice
	Label  string
	Gender Gender
}

// Language selects the voice list shown to users.
type Language string

const (
	Sinhala Language = "sinhala"
	English Language = "english"
	Tamil   Language = "tamil"
)

var languageVoices = map[Language][]VoiceProfile{
	Sinhala: {
		{VoicePuck, "M-Puck", Male},
		{VoiceZephyr, "F-Zephyr", Female},
		{VoiceCharon, "M-Charon", Male},
		{VoiceFenrir, "M-Fenrir", Male},
		{VoiceKore, "F-Kore", Female},
	},
	English: {
		{VoiceKore, "F-Kore", Female},
		{VoicePuck, "M-Puck", Male},
		{VoiceCharon, "M-Charon", Male},
		{VoiceFenrir, "M-Fenrir", Male},
	},
	Tamil: {
		{VoiceKore, "F-Kore", Female},
		{VoicePuck, "M-Puck", Male},
	},
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	return []Language{Sinhala, English, Tamil}
}

// VoicesFor returns a copy of the voice list for lang.
func VoicesFor(lang Language) ([]VoiceProfile, error) {
	list, ok := languageVoices[Language(strings.ToLower(string(lang)))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}

	return slices.Clone(list), nil
}

// Supports reports whether v is offered for lang.
func Supports(lang Language, v Voice) bool {
	list, err := VoicesFor(lang)
	if err != nil {
		return false
	}

	return slices.ContainsFunc(list, func(p VoiceProfile) bool { return p.ID == v })
}
