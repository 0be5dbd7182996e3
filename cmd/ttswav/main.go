// SPDX-License-Identifier: EPL-2.0

// Command ttswav turns text into WAV files with the Gemini TTS API, and
// wraps, unwraps or inspects raw 16-bit PCM offline.
//
// Usage:
//
//	ttswav [flags] [text files...]
//	ttswav -text "ආයුබෝවන්" -o hello.wav
//	ttswav -mode dialog script.txt
//	ttswav -wrap speech.pcm -o speech.wav
//	ttswav -base64 -wrap payload.b64 -o speech.wav
//	ttswav -unwrap speech.wav -o speech.pcm
//	ttswav -inspect speech.wav
//	ttswav -serve -addr :8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ik5/ttswav/internal/config"
	"github.com/ik5/ttswav/internal/logger"
)

// defaultConfigFile is read when -config is not given and the file exists.
const defaultConfigFile = "ttswav.yaml"

type options struct {
	configPath string
	envPath    string

	text  string
	mode  string
	voice string
	out   string

	inspect string
	wrap    string
	unwrap  string
	base64  bool
	strict  bool

	rate     uint
	channels uint

	serve bool
	addr  string

	files []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("ttswav", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: ttswav [flags] [text files...]")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file (default "+defaultConfigFile+" when present)")
	fs.StringVar(&opts.envPath, "env", ".env", "dotenv file loaded before the configuration")
	fs.StringVar(&opts.text, "text", "", "text to speak")
	fs.StringVar(&opts.mode, "mode", "single", "generation mode: single or dialog")
	fs.StringVar(&opts.voice, "voice", "", "voice for single mode")
	fs.StringVar(&opts.out, "o", "", "output file; for generation only the base name is used, inside output.dir")
	fs.StringVar(&opts.inspect, "inspect", "", "print format and levels of a .wav, .pcm or .b64 file")
	fs.StringVar(&opts.wrap, "wrap", "", "wrap a raw PCM file in a WAV container")
	fs.StringVar(&opts.unwrap, "unwrap", "", "extract the PCM data of a WAV file")
	fs.BoolVar(&opts.base64, "base64", false, "the -wrap input is base64 text")
	fs.BoolVar(&opts.strict, "strict", false, "reject PCM that ends with a partial frame")
	fs.UintVar(&opts.rate, "rate", 0, "sample rate of raw PCM (default from config)")
	fs.UintVar(&opts.channels, "channels", 0, "channel count of raw PCM (default from config)")
	fs.BoolVar(&opts.serve, "serve", false, "run the HTTP API")
	fs.StringVar(&opts.addr, "addr", "", "listen address for -serve (default from config)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.files = fs.Args()

	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if err := config.LoadEnv(opts.envPath); err != nil {
		fmt.Fprintf(stderr, "ttswav: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "ttswav: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}

	log, closeLog, err := logger.New(cfg.Logger(), stderr)
	if err != nil {
		fmt.Fprintf(stderr, "ttswav: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog() }()

	switch {
	case opts.inspect != "":
		err = inspect(stdout, opts.inspect, cfg.Format())
	case opts.wrap != "":
		err = wrapFile(stdout, opts.wrap, opts.out, cfg.Format(), opts.base64, opts.strict || cfg.Audio.Strict)
	case opts.unwrap != "":
		err = unwrapFile(stdout, opts.unwrap, opts.out)
	case opts.serve:
		err = serve(ctx, cfg, log)
	default:
		err = generate(ctx, stdout, cfg, opts, log)
	}

	if err != nil {
		log.Error("ttswav failed", zap.Error(err))
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}

	return 0
}

// loadConfig reads -config, or the default file when present, and applies
// flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if opts.rate > math.MaxUint32 {
		return nil, fmt.Errorf("%w: -rate %d exceeds %d", errUsage, opts.rate, uint32(math.MaxUint32))
	}
	if opts.channels > math.MaxUint16 {
		return nil, fmt.Errorf("%w: -channels %d exceeds %d", errUsage, opts.channels, math.MaxUint16)
	}
	if opts.rate > 0 {
		cfg.Audio.SampleRate = uint32(opts.rate)
	}
	if opts.channels > 0 {
		cfg.Audio.Channels = uint16(opts.channels)
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.voice != "" {
		cfg.Gemini.Voice = opts.voice
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
