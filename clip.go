// SPDX-License-Identifier: EPL-2.0

package ttswav

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/ttswav/audio"
	"github.com/ik5/ttswav/formats/pcm"
	"github.com/ik5/ttswav/formats/wav"
)

// Clip is a complete WAV file ready to be played or downloaded.
type Clip struct {
	Data      []byte
	MediaType string
	FileName  string
	Format    audio.Format
}

type clipOptions struct {
	strict   bool
	fileName string
}

// ClipOption configures NewClip and FromPCM.
type ClipOption func(*clipOptions)

// WithStrict rejects PCM whose length is not a whole number of frames.
func WithStrict(strict bool) ClipOption {
	return func(o *clipOptions) { o.strict = strict }
}

// WithFileName sets the download name. Only the base name is kept.
func WithFileName(name string) ClipOption {
	return func(o *clipOptions) {
		if name != "" {
			o.fileName = filepath.Base(name)
		}
	}
}

// NewClip decodes base64 PCM and wraps it in a WAV container of format f.
func NewClip(text string, f audio.Format, opts ...ClipOption) (*Clip, error) {
	raw, err := pcm.DecodeBase64(text)
	if err != nil {
		return nil, err
	}

	return FromPCM(raw, f, opts...)
}

// FromPCM wraps raw little-endian PCM in a WAV container of format f.
func FromPCM(raw []byte, f audio.Format, opts ...ClipOption) (*Clip, error) {
	o := clipOptions{fileName: wav.DefaultFileName}
	for _, opt := range opts {
		opt(&o)
	}

	if o.strict {
		if err := f.CheckAlignment(len(raw)); err != nil {
			return nil, err
		}
	}

	data, err := wav.BuildFormat(raw, f)
	if err != nil {
		return nil, err
	}

	return &Clip{
		Data:      data,
		MediaType: wav.MediaType,
		FileName:  o.fileName,
		Format:    f,
	}, nil
}

// PCMSize is the length of the data chunk.
func (c *Clip) PCMSize() int {
	return max(len(c.Data)-wav.HeaderSize, 0)
}

// PCM returns the data chunk without copying.
func (c *Clip) PCM() []byte {
	if len(c.Data) < wav.HeaderSize {
		return nil
	}

	return c.Data[wav.HeaderSize:]
}

// Duration is the playback time of the clip.
func (c *Clip) Duration() time.Duration {
	return c.Format.Duration(c.PCMSize())
}

// WriteTo implements io.WriterTo.
func (c *Clip) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Data)
	if err != nil {
		return int64(n), fmt.Errorf("writing clip: %w", err)
	}

	return int64(n), nil
}

// Save writes the clip to dir/FileName, creating dir when needed, and
// returns the path written.
func (c *Clip) Save(dir string) (string, error) {
	name := c.FileName
	if name == "" {
		name = wav.DefaultFileName
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, c.Data, 0o644); err != nil {
		return "", fmt.Errorf("saving clip: %w", err)
	}

	return path, nil
}
