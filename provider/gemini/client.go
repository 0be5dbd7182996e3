// SPDX-License-Identifier: EPL-2.0

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultModel   = "gemini-2.5-flash-preview-tts"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultTimeout = 2 * time.Minute

	// base64 of several minutes of 24 kHz audio fits comfortably
	maxResponseSize = 256 << 20
	maxErrorBody    = 64 << 10
)

// Option configures a Client.
type Option func(*Client)

// WithModel sets the speech model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at another endpoint, such as a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithSpeakerVoices maps dialog speaker names to voices.
func WithSpeakerVoices(voices map[string]Voice) Option {
	return func(c *Client) {
		for k, v := range voices {
			c.speakerVoices[k] = v
		}
	}
}

// WithDialogVoices sets the voices used, in order, for dialog speakers that
// have no entry in the speaker map.
func WithDialogVoices(first, second Voice) Option {
	return func(c *Client) { c.dialogVoices = [2]Voice{first, second} }
}

// Client calls the Gemini generateContent endpoint for speech. It is safe
// for concurrent use.
type Client struct {
	apiKey        string
	model         string
	baseURL       string
	httpClient    *http.Client
	log           *zap.Logger
	speakerVoices map[string]Voice
	dialogVoices  [2]Voice
}

// New returns a client authenticating with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:        apiKey,
		model:         DefaultModel,
		baseURL:       DefaultBaseURL,
		httpClient:    &http.Client{Timeout: DefaultTimeout},
		log:           zap.NewNop(),
		speakerVoices: make(map[string]Voice),
		dialogVoices:  [2]Voice{VoicePuck, VoiceKore},
	}
	for _, o := range opts {
		o(c)
	}

	return c
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// GenerateSingle speaks text with one prebuilt voice and returns the base64
// PCM payload. An empty voice selects Puck.
func (c *Client) GenerateSingle(ctx context.Context, text string, voice Voice) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if voice == "" {
		voice = VoicePuck
	}

	vc := newVoiceConfig(voice)
	req := c.newRequest(text, &speechConfig{VoiceConfig: &vc})

	return c.generate(ctx, req, zap.String("mode", "single"), zap.String("voice", string(voice)))
}

// GenerateDialog speaks a two-speaker "Speaker: text" script and returns the
// base64 PCM payload.
func (c *Client) GenerateDialog(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	d, err := ParseDialog(text)
	if err != nil {
		return "", err
	}

	voices := c.dialogVoiceFor(d.Speakers)
	cfg := &multiSpeakerVoiceConfig{}
	for i, speaker := range d.Speakers {
		cfg.SpeakerVoiceConfigs = append(cfg.SpeakerVoiceConfigs, speakerVoiceConfig{
			Speaker:     speaker,
			VoiceConfig: newVoiceConfig(voices[i]),
		})
	}

	req := c.newRequest(d.Prompt(text), &speechConfig{MultiSpeakerVoiceConfig: cfg})

	return c.generate(ctx, req,
		zap.String("mode", "dialog"),
		zap.Strings("speakers", d.Speakers),
		zap.Int("lines", len(d.Lines)),
	)
}

func (c *Client) dialogVoiceFor(speakers []string) []Voice {
	voices := make([]Voice, len(speakers))
	for i, s := range speakers {
		if v, ok := c.speakerVoices[s]; ok {
			voices[i] = v
			continue
		}
		voices[i] = c.dialogVoices[i%len(c.dialogVoices)]
	}

	return voices
}

func (c *Client) newRequest(text string, sc *speechConfig) *generateRequest {
	return &generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig:       sc,
		},
	}
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
}

func (c *Client) generate(ctx context.Context, req *generateRequest, fields ...zap.Field) (string, error) {
	log := c.log.With(append(fields, zap.String("model", c.model))...)

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("gemini: encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	log.Debug("sending speech request", zap.Int("request_bytes", len(body)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn("speech request failed", zap.Error(err))
		return "", fmt.Errorf("gemini: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := readAPIError(resp)
		log.Warn("speech request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return "", apiErr
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		return "", fmt.Errorf("gemini: decoding response: %w", err)
	}

	data, err := audioData(&out)
	if err != nil {
		log.Warn("no audio in response", zap.Error(err))
		return "", err
	}

	log.Info("speech generated",
		zap.Int("base64_bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return data, nil
}

// audioData extracts the inline audio of the first part of the first
// candidate.
func audioData(resp *generateResponse) (string, error) {
	var (
		cand *candidate
		p    *part
	)
	if len(resp.Candidates) > 0 {
		cand = &resp.Candidates[0]
		if len(cand.Content.Parts) > 0 {
			p = &cand.Content.Parts[0]
		}
	}

	if p != nil && p.InlineData != nil && p.InlineData.Data != "" {
		return p.InlineData.Data, nil
	}

	if p != nil && p.Text != "" {
		return "", fmt.Errorf("%w: %s", ErrModelRefused, p.Text)
	}

	reason := "Unknown"
	if cand != nil && cand.FinishReason != "" {
		reason = cand.FinishReason
	}

	return "", fmt.Errorf("%w, finish reason: %s", ErrNoAudio, reason)
}

func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		apiErr.Status = body.Error.Status
		apiErr.Message = body.Error.Message
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

// IsRetryable reports whether err is a transient API failure worth
// retrying: rate limiting or a server side error.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
}
