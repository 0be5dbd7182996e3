// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/ttswav"
	"github.com/ik5/ttswav/audio"
	"github.com/ik5/ttswav/formats/pcm"
	"github.com/ik5/ttswav/formats/wav"
)

// base64Decoder reads base64 text carrying raw PCM, as saved from an API
// response.
type base64Decoder struct {
	pcm.Decoder
}

func (d base64Decoder) Decode(r io.Reader) (audio.Source, error) {
	return d.Decoder.Decode(pcm.NewBase64Reader(r))
}

// newRegistry maps file extensions to decoders. Headerless inputs are read
// as f.
func newRegistry(f audio.Format) *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("pcm", pcm.Decoder{Format: f})
	reg.Register("raw", pcm.Decoder{Format: f})
	reg.Register("b64", base64Decoder{pcm.Decoder{Format: f}})

	return reg
}

func extOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func inspect(w io.Writer, path string, f audio.Format) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	src, err := newRegistry(f).Open(extOf(path), in)
	if err != nil {
		return err
	}
	defer src.Close()

	st, err := audio.Measure(src, 0)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d Hz, %d ch, %d frames, %v\n", filepath.Base(path), st.SampleRate, st.Channels, st.Frames, st.Duration)
	fmt.Fprintf(w, "peak %.1f dBFS, rms %.4f\n", st.PeakDBFS(), st.RMS)

	return nil
}

// wrapFile builds a WAV file from raw or base64 PCM. An empty out replaces
// the input extension with .wav.
func wrapFile(w io.Writer, in, out string, f audio.Format, isBase64, strict bool) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	if out == "" {
		out = replaceExt(in, ".wav")
	}

	opts := []ttswav.ClipOption{ttswav.WithStrict(strict), ttswav.WithFileName(out)}

	var clip *ttswav.Clip
	if isBase64 {
		clip, err = ttswav.NewClip(strings.TrimSpace(string(data)), f, opts...)
	} else {
		clip, err = ttswav.FromPCM(data, f, opts...)
	}
	if err != nil {
		return fmt.Errorf("wrapping %s: %w", in, err)
	}

	if err := os.WriteFile(out, clip.Data, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s, %v\n", out, clip.Format, clip.Duration())

	return nil
}

// unwrapFile writes the samples of a 16-bit WAV file as headerless PCM. An
// empty out replaces the input extension with .pcm.
func unwrapFile(w io.Writer, in, out string) error {
	file, err := os.Open(in)
	if err != nil {
		return err
	}
	defer file.Close()

	src, err := wav.Decoder{}.Decode(file)
	if err != nil {
		return fmt.Errorf("unwrapping %s: %w", in, err)
	}
	defer src.Close()

	raw, f, err := pcm.Encode(src)
	if err != nil {
		return fmt.Errorf("unwrapping %s: %w", in, err)
	}

	if out == "" {
		out = replaceExt(in, ".pcm")
	}
	if err := os.WriteFile(out, raw, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s, %d bytes\n", out, f, len(raw))

	return nil
}
