// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ik5/ttswav/internal/app"
	"github.com/ik5/ttswav/internal/config"
	"github.com/ik5/ttswav/internal/server"
	"github.com/ik5/ttswav/provider/gemini"
)

var (
	errUsage       = errors.New("invalid usage")
	errNothingToDo = fmt.Errorf("%w: nothing to do: give -text, text files, or one of -wrap, -unwrap, -inspect, -serve", errUsage)
)

func newClient(cfg *config.Config, log *zap.Logger) (*gemini.Client, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	first, second := cfg.DialogVoices()

	return gemini.New(cfg.Gemini.APIKey,
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithTimeout(cfg.Gemini.Timeout),
		gemini.WithLogger(log.Named("gemini")),
		gemini.WithSpeakerVoices(cfg.SpeakerVoices()),
		gemini.WithDialogVoices(first, second),
	), nil
}

func newApp(cfg *config.Config, gen app.Generator, log *zap.Logger) *app.App {
	return app.New(gen, app.Options{
		Format:       cfg.Format(),
		Strict:       cfg.Audio.Strict,
		DefaultVoice: cfg.Voice(),
		OutputDir:    cfg.Output.Dir,
		Concurrency:  cfg.Output.Concurrency,
		Logger:       log.Named("app"),
	})
}

// jobsFrom builds one job for -text and one per text file. File jobs are
// named after their input.
func jobsFrom(cfg *config.Config, opts *options) ([]app.Job, error) {
	mode, err := app.ParseMode(opts.mode)
	if err != nil {
		return nil, err
	}

	var jobs []app.Job

	if opts.text != "" {
		name := cfg.Output.FileName
		if opts.out != "" {
			name = opts.out
		}
		jobs = append(jobs, app.Job{Text: opts.text, Mode: mode, Voice: cfg.Voice(), FileName: name})
	}

	for _, path := range opts.files {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, app.Job{
			Text:     string(text),
			Mode:     mode,
			Voice:    cfg.Voice(),
			FileName: replaceExt(filepath.Base(path), ".wav"),
		})
	}

	if len(jobs) == 0 {
		return nil, errNothingToDo
	}

	return jobs, nil
}

func generate(ctx context.Context, w io.Writer, cfg *config.Config, opts *options, log *zap.Logger) error {
	jobs, err := jobsFrom(cfg, opts)
	if err != nil {
		return err
	}

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	a := newApp(cfg, client, log)

	clips, err := a.GenerateAll(ctx, jobs)
	if err != nil {
		return err
	}

	for _, clip := range clips {
		path, err := a.Save(clip)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s, %v\n", path, clip.Format, clip.Duration())
	}

	return nil
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	srv := server.New(newApp(cfg, client, log), server.Options{
		BodyLimit: cfg.Server.BodyLimit,
		Language:  gemini.Language(cfg.Gemini.Language),
		Logger:    log.Named("http"),
	})

	return srv.Listen(ctx, cfg.Server.Addr)
}
