// SPDX-License-Identifier: EPL-2.0

package gemini

import (
	"errors"
	"slices"
	"testing"
)

func TestParseDialog(t *testing.T) {
	t.Parallel()

	text := "Nimal: Hello there\n\n  Kamala: Hi: how are you?\nstage direction without colon\nNimal: Fine\n"

	d, err := ParseDialog(text)
	if err != nil {
		t.Fatalf("ParseDialog() error = %v", err)
	}

	wantLines := []Line{
		{"Nimal", "Hello there"},
		{"Kamala", "Hi: how are you?"},
		{"Nimal", "Fine"},
	}
	if !slices.Equal(d.Lines, wantLines) {
		t.Errorf("Lines = %v, want %v", d.Lines, wantLines)
	}
	if !slices.Equal(d.Speakers, []string{"Nimal", "Kamala"}) {
		t.Errorf("Speakers = %v, want [Nimal Kamala]", d.Speakers)
	}
}

func TestParseDialog_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrInvalidDialog},
		{"no colons", "hello\nworld", ErrInvalidDialog},
		{"one speaker", "A: one\nA: two", ErrSpeakerCount},
		{"three speakers", "A: one\nB: two\nC: three", ErrSpeakerCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseDialog(tt.text); !errors.Is(err, tt.want) {
				t.Errorf("ParseDialog(%q) error = %v, want %v", tt.text, err, tt.want)
			}
		})
	}
}

func TestParseDialog_SpeakerCountMessage(t *testing.T) {
	t.Parallel()

	_, err := ParseDialog("A: one\nB: two\nC: three")
	if want := "dialogs must have exactly 2 speakers, found 3"; err == nil || err.Error() != want {
		t.Errorf("error = %v, want %q", err, want)
	}
}

func TestDialog_Prompt(t *testing.T) {
	t.Parallel()

	text := "A: hi\nB: hello"
	d, _ := ParseDialog(text)

	want := "TTS the following conversation between A and B:\nA: hi\nB: hello"
	if got := d.Prompt(text); got != want {
		t.Errorf("Prompt() = %q, want %q", got, want)
	}
}
