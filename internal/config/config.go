package config

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/arrayref/pkg/frame"
)

// Config is the on-disk configuration of the arrayref CLI.
type Config struct {
	SchemaID  uint64 `yaml:"schema_id"`
	Compress  bool   `yaml:"compress"`
	Level     string `yaml:"level"`
	ChunkSize int    `yaml:"chunk_size"`
	MaxFrame  uint32 `yaml:"max_frame"`
	LogLevel  string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Level:     "default",
		ChunkSize: 64 << 10,
		MaxFrame:  frame.DefaultMaxFrame,
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if ok, _ := zstd.EncoderLevelFromString(c.Level); !ok {
		return fmt.Errorf("config: unknown compression level %q", c.Level)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("config: chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.MaxFrame == 0 {
		return fmt.Errorf("config: max_frame must be positive")
	}
	if body := c.MaxBody(); body > uint64(c.MaxFrame) {
		return fmt.Errorf("config: chunk_size %d seals to up to %d bytes, over max_frame %d", c.ChunkSize, body, c.MaxFrame)
	}
	return nil
}

// MaxBody bounds the sealed body of one chunk: the chunk, the AEAD tag and,
// with compression, the zstd framing of an incompressible chunk.
func (c Config) MaxBody() uint64 {
	n := uint64(c.ChunkSize) + frame.Overhead
	if c.Compress {
		n += uint64(c.ChunkSize)/128 + 64
	}
	return n
}

// FrameOptions maps the configuration onto frame.Options.
func (c Config) FrameOptions() frame.Options {
	_, level := zstd.EncoderLevelFromString(c.Level)
	return frame.Options{
		SchemaID: c.SchemaID,
		Compress: c.Compress,
		Level:    level,
	}
}
