// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration of ttswav.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ik5/ttswav/audio"
	"github.com/ik5/ttswav/internal/logger"
	"github.com/ik5/ttswav/provider/gemini"
)

// APIKeyEnv is read when the configuration has no API key.
const APIKeyEnv = "GEMINI_API_KEY"

var ErrMissingAPIKey = errors.New("gemini api key is not set (gemini.api_key or " + APIKeyEnv + ")")

type Config struct {
	Gemini GeminiConfig `yaml:"gemini"`
	Audio  AudioConfig  `yaml:"audio"`
	Dialog DialogConfig `yaml:"dialog"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type GeminiConfig struct {
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Voice    string        `yaml:"voice"`
	Language string        `yaml:"language"`
}

// AudioConfig describes the PCM returned by the API.
type AudioConfig struct {
	SampleRate uint32 `yaml:"sample_rate"`
	Channels   uint16 `yaml:"channels"`
	// Strict rejects payloads that end with a partial frame.
	Strict bool `yaml:"strict"`
}

type DialogConfig struct {
	SpeakerVoices map[string]string `yaml:"speaker_voices"`
	// DefaultVoices are used in order for speakers not in SpeakerVoices.
	DefaultVoices []string `yaml:"default_voices"`
}

type OutputConfig struct {
	Dir         string `yaml:"dir"`
	FileName    string `yaml:"file_name"`
	Concurrency int    `yaml:"concurrency"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	BodyLimit int    `yaml:"body_limit"` // bytes
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// LoadEnv loads KEY=value files into the environment without overriding
// variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	return nil
}

// Load reads the YAML file at path. ${VAR} references are expanded from the
// environment before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := LoadFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromReader parses, fills defaults and validates a configuration.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	expanded := os.Expand(string(data), os.Getenv)

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	setDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv(APIKeyEnv)
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = gemini.DefaultModel
	}
	if cfg.Gemini.BaseURL == "" {
		cfg.Gemini.BaseURL = gemini.DefaultBaseURL
	}
	if cfg.Gemini.Timeout == 0 {
		cfg.Gemini.Timeout = gemini.DefaultTimeout
	}
	if cfg.Gemini.Voice == "" {
		cfg.Gemini.Voice = string(gemini.VoicePuck)
	}
	if cfg.Gemini.Language == "" {
		cfg.Gemini.Language = string(gemini.Sinhala)
	}

	if cfg.Audio.SampleRate == 0 {
		cfg.Audio.SampleRate = audio.GeminiFormat.SampleRate
	}
	if cfg.Audio.Channels == 0 {
		cfg.Audio.Channels = audio.GeminiFormat.Channels
	}

	if len(cfg.Dialog.DefaultVoices) == 0 {
		cfg.Dialog.DefaultVoices = []string{string(gemini.VoicePuck), string(gemini.VoiceKore)}
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Output.Concurrency == 0 {
		cfg.Output.Concurrency = 2
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.BodyLimit == 0 {
		cfg.Server.BodyLimit = 1 << 20
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate reports every invalid setting in cfg.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Gemini.Timeout < 0 {
		errs = append(errs, fmt.Errorf("gemini.timeout %v must not be negative", cfg.Gemini.Timeout))
	}
	if _, err := gemini.ParseVoice(cfg.Gemini.Voice); err != nil {
		errs = append(errs, fmt.Errorf("gemini.voice: %w", err))
	}
	if _, err := gemini.VoicesFor(gemini.Language(cfg.Gemini.Language)); err != nil {
		errs = append(errs, fmt.Errorf("gemini.language: %w", err))
	}

	if err := cfg.Format().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("audio: %w", err))
	}

	if len(cfg.Dialog.DefaultVoices) != 2 {
		errs = append(errs, fmt.Errorf("dialog.default_voices needs 2 voices, got %d", len(cfg.Dialog.DefaultVoices)))
	}
	for i, v := range cfg.Dialog.DefaultVoices {
		if _, err := gemini.ParseVoice(v); err != nil {
			errs = append(errs, fmt.Errorf("dialog.default_voices[%d]: %w", i, err))
		}
	}
	for speaker, v := range cfg.Dialog.SpeakerVoices {
		if _, err := gemini.ParseVoice(v); err != nil {
			errs = append(errs, fmt.Errorf("dialog.speaker_voices[%s]: %w", speaker, err))
		}
	}

	if cfg.Output.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("output.concurrency %d must be at least 1", cfg.Output.Concurrency))
	}
	if cfg.Server.BodyLimit < 0 {
		errs = append(errs, fmt.Errorf("server.body_limit %d must not be negative", cfg.Server.BodyLimit))
	}

	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// RequireAPIKey fails when no API key is configured.
func (c *Config) RequireAPIKey() error {
	if c.Gemini.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Format is the PCM format of generated audio.
func (c *Config) Format() audio.Format {
	return audio.PCM16(c.Audio.SampleRate, c.Audio.Channels)
}

// Logger converts the log section for the logger package.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
	}
}

// SpeakerVoices returns the dialog speaker map with parsed voice names.
// Invalid entries are rejected by Validate.
func (c *Config) SpeakerVoices() map[string]gemini.Voice {
	out := make(map[string]gemini.Voice, len(c.Dialog.SpeakerVoices))
	for speaker, name := range c.Dialog.SpeakerVoices {
		if v, err := gemini.ParseVoice(name); err == nil {
			out[speaker] = v
		}
	}
	return out
}

// DialogVoices returns the parsed default dialog voices.
func (c *Config) DialogVoices() (gemini.Voice, gemini.Voice) {
	voices := [2]gemini.Voice{gemini.VoicePuck, gemini.VoiceKore}
	for i, name := range c.Dialog.DefaultVoices {
		if i >= len(voices) {
			break
		}
		if v, err := gemini.ParseVoice(name); err == nil {
			voices[i] = v
		}
	}
	return voices[0], voices[1]
}

// Voice returns the parsed single speaker voice.
func (c *Config) Voice() gemini.Voice {
	v, err := gemini.ParseVoice(c.Gemini.Voice)
	if err != nil {
		return gemini.VoicePuck
	}
	return v
}
