// SPDX-License-Identifier: EPL-2.0

// Package server exposes clip generation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ik5/ttswav/audio"
	"github.com/ik5/ttswav/formats/pcm"
	"github.com/ik5/ttswav/internal/app"
	"github.com/ik5/ttswav/provider/gemini"
)

const (
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	BodyLimit int // bytes; 0 uses the fiber default
	Language  gemini.Language
	Logger    *zap.Logger
}

// Server serves the generation API.
type Server struct {
	app      *app.App
	log      *zap.Logger
	language gemini.Language
	fiber    *fiber.App
}

type ttsRequest struct {
	Text     string `json:"text"`
	Mode     string `json:"mode,omitempty"`
	Voice    string `json:"voice,omitempty"`
	Language string `json:"language,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

type voiceResponse struct {
	ID     gemini.Voice  `json:"id"`
	Label  string        `json:"label"`
	Gender gemini.Gender `json:"gender"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// New builds the HTTP routes around a.
func New(a *app.App, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Language == "" {
		opts.Language = gemini.Sinhala
	}

	s := &Server{app: a, log: opts.Logger, language: opts.Language}

	s.fiber = fiber.New(fiber.Config{
		AppName:               "ttswav",
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.fiber.Use(s.requestID)
	s.fiber.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := s.fiber.Group("/api")
	api.Get("/voices", s.handleVoices)
	api.Post("/tts", s.handleTTS)

	return s
}

// Handler returns the underlying fiber application.
func (s *Server) Handler() *fiber.App { return s.fiber }

// Listen serves on addr until ctx is done.
func (s *Server) Listen(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.fiber.Listener(ln) }()

	s.log.Info("listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return fmt.Errorf("serving %s: %w", ln.Addr(), err)
	case <-ctx.Done():
		s.log.Info("shutting down")
		if err := s.fiber.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get(requestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	c.Locals(requestIDHeader, id)
	c.Set(requestIDHeader, id)

	return c.Next()
}

func requestIDOf(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDHeader).(string)
	return id
}

func (s *Server) handleVoices(c *fiber.Ctx) error {
	lang := gemini.Language(c.Query("language", string(s.language)))

	list, err := gemini.VoicesFor(lang)
	if err != nil {
		return err
	}

	out := make([]voiceResponse, 0, len(list))
	for _, v := range list {
		out = append(out, voiceResponse{ID: v.ID, Label: v.Label, Gender: v.Gender})
	}

	return c.JSON(out)
}

func (s *Server) handleTTS(c *fiber.Ctx) error {
	var req ttsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	job, err := s.job(req)
	if err != nil {
		return err
	}

	clip, err := s.app.Generate(c.UserContext(), job)
	if err != nil {
		return err
	}

	c.Attachment(clip.FileName)
	c.Set(fiber.HeaderContentType, clip.MediaType)
	c.Set("X-Audio-Duration-Ms", strconv.FormatInt(clip.Duration().Milliseconds(), 10))

	return c.Send(clip.Data)
}

func (s *Server) job(req ttsRequest) (app.Job, error) {
	mode, err := app.ParseMode(req.Mode)
	if err != nil {
		return app.Job{}, err
	}

	job := app.Job{Text: req.Text, Mode: mode, FileName: req.FileName}
	if mode == app.ModeDialog || req.Voice == "" {
		return job, nil
	}

	voice, err := gemini.ParseVoice(req.Voice)
	if err != nil {
		return app.Job{}, err
	}

	lang := s.language
	if req.Language != "" {
		lang = gemini.Language(req.Language)
	}
	if _, err := gemini.VoicesFor(lang); err != nil {
		return app.Job{}, err
	}
	if !gemini.Supports(lang, voice) {
		return app.Job{}, fmt.Errorf("%w: %s is not offered for %s", gemini.ErrUnknownVoice, voice, lang)
	}

	job.Voice = voice

	return job, nil
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := statusFor(err)

	log := s.log.With(
		zap.String("request_id", requestIDOf(c)),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Error(err),
	)
	if status >= http.StatusInternalServerError {
		log.Error("request failed")
	} else {
		log.Info("request rejected")
	}

	return c.Status(status).JSON(errorResponse{Error: err.Error(), RequestID: requestIDOf(c)})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	switch {
	case errors.Is(err, gemini.ErrEmptyText),
		errors.Is(err, gemini.ErrInvalidDialog),
		errors.Is(err, gemini.ErrSpeakerCount),
		errors.Is(err, gemini.ErrUnknownVoice),
		errors.Is(err, gemini.ErrUnknownLanguage),
		errors.Is(err, app.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, gemini.ErrModelRefused):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case gemini.IsRetryable(err):
		return http.StatusServiceUnavailable
	}

	var apiErr *gemini.APIError
	switch {
	case errors.As(err, &apiErr),
		errors.Is(err, gemini.ErrNoAudio),
		errors.Is(err, pcm.ErrInvalidBase64),
		errors.Is(err, audio.ErrMalformedAudio):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
