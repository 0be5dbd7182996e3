// SPDX-License-Identifier: EPL-2.0

package gemini

import (
	"fmt"
	"strings"
)

// Line is one "Speaker: text" line of a dialog.
type Line struct {
	Speaker string
	Text    string
}

// Dialog is a parsed two-party script.
type Dialog struct {
	Lines []Line
	// Speakers in order of first appearance.
	Speakers []string
}

// ParseDialog splits text into speaker lines. Blank lines and lines without
// a colon are ignored; everything after the first colon is the spoken text.
// Exactly two distinct speakers are required.
func ParseDialog(text string) (*Dialog, error) {
	d := &Dialog{}
	seen := make(map[string]bool)

	for raw := range strings.SplitSeq(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		speaker, spoken, ok := strings.Cut(raw, ":")
		if !ok {
			continue
		}

		line := Line{Speaker: strings.TrimSpace(speaker), Text: strings.TrimSpace(spoken)}
		d.Lines = append(d.Lines, line)

		if !seen[line.Speaker] {
			seen[line.Speaker] = true
			d.Speakers = append(d.Speakers, line.Speaker)
		}
	}

	if len(d.Lines) == 0 {
		return nil, ErrInvalidDialog
	}
	if len(d.Speakers) != 2 {
		return nil, fmt.Errorf("%w, found %d", ErrSpeakerCount, len(d.Speakers))
	}

	return d, nil
}

// Prompt is the instruction sent with the original text.
func (d *Dialog) Prompt(text string) string {
	return fmt.Sprintf("TTS the following conversation between %s and %s:\n%s", d.Speakers[0], d.Speakers[1], text)
}
