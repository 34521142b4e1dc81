package launcher

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/go-primlist/snapshot"
)

// Config is the merged launcher configuration.
type Config struct {
	Logging LoggingConfig `yaml:"log"`
	Encode  EncodeConfig  `yaml:"encode"`
}

type LoggingConfig struct {
	Format    string `yaml:"format"`
	Verbosity int    `yaml:"verbosity"`
	SentryDSN string `yaml:"sentry_dsn"`
}

// EncodeConfig holds the defaults of the encode command.
type EncodeConfig struct {
	Kind     string `yaml:"kind"`
	Format   string `yaml:"format"`
	Compress string `yaml:"compress"`
}

// MakeAllConfigs merges defaults, the optional config file and global CLI
// overrides, in that order.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := DefaultConfig()

	if file := ctx.GlobalString("config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	applyCLIOverrides(ctx, &cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.GlobalIsSet("log.format") {
		cfg.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("sentry.dsn") {
		cfg.Logging.SentryDSN = ctx.GlobalString("sentry.dsn")
	}
}

// applyEncodeOverrides applies the flags of the encode command.
func applyEncodeOverrides(ctx *cli.Context, cfg *EncodeConfig) error {
	if ctx.IsSet("kind") {
		cfg.Kind = ctx.String("kind")
	}
	if ctx.IsSet("format") {
		cfg.Format = ctx.String("format")
	}
	if ctx.IsSet("compress") {
		cfg.Compress = ctx.String("compress")
	}
	return cfg.validate()
}

func (c Config) validate() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}
	if c.Logging.Verbosity < 0 || c.Logging.Verbosity > 5 {
		return fmt.Errorf("invalid log verbosity %d", c.Logging.Verbosity)
	}
	return c.Encode.validate()
}

func (c EncodeConfig) validate() error {
	switch c.Kind {
	case "int", "long":
	default:
		return fmt.Errorf("invalid element kind %q", c.Kind)
	}
	if _, err := snapshot.ParseEncoding(c.Format); err != nil {
		return err
	}
	if _, err := snapshot.ParseCompression(c.Compress); err != nil {
		return err
	}
	return nil
}
