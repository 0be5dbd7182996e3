// SPDX-License-Identifier: EPL-2.0

// Package app ties the speech client to the WAV builder.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/ttswav"
	"github.com/ik5/ttswav/audio"
	"github.com/ik5/ttswav/provider/gemini"
)

// Mode selects single or two-speaker generation.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeDialog Mode = "dialog"
)

var ErrUnknownMode = errors.New("unknown generation mode")

// ParseMode accepts "single" and "dialog"; empty means single.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSingle, "":
		return ModeSingle, nil
	case ModeDialog:
		return ModeDialog, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Generator produces base64 PCM. *gemini.Client implements it.
type Generator interface {
	GenerateSingle(ctx context.Context, text string, voice gemini.Voice) (string, error)
	GenerateDialog(ctx context.Context, text string) (string, error)
}

var _ Generator = (*gemini.Client)(nil)

// Job is one text to speak.
type Job struct {
	Text     string
	Mode     Mode
	Voice    gemini.Voice // single mode only; empty uses the default voice
	FileName string       // empty uses the default file name
}

// Options configures an App.
type Options struct {
	Format       audio.Format
	Strict       bool
	DefaultVoice gemini.Voice
	OutputDir    string
	Concurrency  int
	Logger       *zap.Logger
}

// App generates clips. It is safe for concurrent use.
type App struct {
	gen  Generator
	opts Options
	log  *zap.Logger
}

// New returns an App using gen. Zero options fall back to Gemini's format,
// Puck, the working directory and a concurrency of one.
func New(gen Generator, opts Options) *App {
	if opts.Format == (audio.Format{}) {
		opts.Format = audio.GeminiFormat
	}
	if opts.DefaultVoice == "" {
		opts.DefaultVoice = gemini.VoicePuck
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &App{gen: gen, opts: opts, log: opts.Logger}
}

// Generate requests audio for job and wraps it in a WAV clip.
func (a *App) Generate(ctx context.Context, job Job) (*ttswav.Clip, error) {
	mode, err := ParseMode(string(job.Mode))
	if err != nil {
		return nil, err
	}

	voice := job.Voice
	if voice == "" {
		voice = a.opts.DefaultVoice
	}

	log := a.log.With(zap.String("mode", string(mode)), zap.Int("text_runes", len([]rune(job.Text))))
	start := time.Now()

	var payload string
	switch mode {
	case ModeDialog:
		payload, err = a.gen.GenerateDialog(ctx, job.Text)
	default:
		log = log.With(zap.String("voice", string(voice)))
		payload, err = a.gen.GenerateSingle(ctx, job.Text, voice)
	}
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		return nil, fmt.Errorf("generating %s audio: %w", mode, err)
	}

	clip, err := ttswav.NewClip(payload, a.opts.Format,
		ttswav.WithStrict(a.opts.Strict),
		ttswav.WithFileName(job.FileName),
	)
	if err != nil {
		log.Error("building wav failed", zap.Error(err))
		return nil, err
	}

	log.Info("clip ready",
		zap.Int("wav_bytes", len(clip.Data)),
		zap.Duration("audio", clip.Duration()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return clip, nil
}

// GenerateAll runs jobs with bounded concurrency. Results keep the order of
// jobs. The first failure cancels the remaining requests.
func (a *App) GenerateAll(ctx context.Context, jobs []Job) ([]*ttswav.Clip, error) {
	clips := make([]*ttswav.Clip, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			clip, err := a.Generate(ctx, job)
			if err != nil {
				return fmt.Errorf("job %d: %w", i, err)
			}
			clips[i] = clip
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return clips, nil
}

// Save writes clip into the output directory and returns the path.
func (a *App) Save(clip *ttswav.Clip) (string, error) {
	path, err := clip.Save(a.opts.OutputDir)
	if err != nil {
		return "", err
	}

	a.log.Info("clip saved", zap.String("path", filepath.Clean(path)))

	return path, nil
}

// Format is the PCM format clips are built with.
func (a *App) Format() audio.Format { return a.opts.Format }
