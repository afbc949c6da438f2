package main

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rawbytedev/arrayref/internal/config"
	"github.com/rawbytedev/arrayref/pkg/frame"
)

var _FlagConfig = &cli.StringFlag{
	Name:    "config",
	Usage:   "path to a YAML config file",
	EnvVars: []string{"ARRAYREF_CONFIG"},
}

var _FlagLogLevel = &cli.StringFlag{
	Name:    "log-level",
	Usage:   "overrides log_level from the config",
	EnvVars: []string{"ARRAYREF_LOG_LEVEL"},
}

var _FlagKey = &cli.StringFlag{
	Name:     "key",
	Usage:    "path to a 32-byte key file",
	EnvVars:  []string{"ARRAYREF_KEY"},
	Required: true,
}

var _FlagIn = &cli.StringFlag{
	Name:  "in",
	Usage: "input file, - for stdin",
	Value: "-",
}

var _FlagOut = &cli.StringFlag{
	Name:  "out",
	Usage: "output file, - for stdout",
	Value: "-",
}

const configKey = "config"

func NewApp() *cli.App {
	return &cli.App{
		Name:  "arrayref",
		Usage: "seal, open and inspect fixed-layout frames",
		Flags: []cli.Flag{_FlagConfig, _FlagLogLevel},
		Before: func(ctx *cli.Context) error {
			cfg, err := config.Load(ctx.String("config"))
			if err != nil {
				return err
			}
			if ctx.IsSet("log-level") {
				cfg.LogLevel = ctx.String("log-level")
			}
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			log.SetOutput(ctx.App.ErrWriter)
			log.SetLevel(level)
			ctx.App.Metadata = map[string]any{configKey: cfg}
			return nil
		},
		Commands: []*cli.Command{
			KeygenCommand,
			SealCommand,
			OpenCommand,
			InspectCommand,
		},
	}
}

func appConfig(ctx *cli.Context) config.Config {
	if cfg, ok := ctx.App.Metadata[configKey].(config.Config); ok {
		return cfg
	}
	return config.Default()
}

func loadSealer(ctx *cli.Context, opts frame.Options) (*frame.Sealer, error) {
	raw, err := os.ReadFile(ctx.String("key"))
	if err != nil {
		return nil, err
	}
	key, err := frame.KeyFrom(raw)
	if err != nil {
		return nil, err
	}
	return frame.NewSealer(key, opts)
}

func openInput(ctx *cli.Context) (io.ReadCloser, error) {
	name := ctx.String("in")
	if name == "-" {
		return io.NopCloser(ctx.App.Reader), nil
	}
	return os.Open(name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func createOutput(ctx *cli.Context) (io.WriteCloser, error) {
	name := ctx.String("out")
	if name == "-" {
		return nopWriteCloser{ctx.App.Writer}, nil
	}
	return os.Create(name)
}
