package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dendrascience/txtbundle/bundle"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every key when read from the environment,
	// e.g. TXTBUNDLE_FRAMING.
	EnvPrefix = "TXTBUNDLE"

	KeyFraming   = "framing"
	KeyOverwrite = "overwrite"
	KeyLogLevel  = "log_level"
)

// ErrConfigNotFound is returned when an explicitly requested config file
// does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// Config holds the settings shared by all subcommands.
type Config struct {
	Framing   string `mapstructure:"framing"`
	Overwrite bool   `mapstructure:"overwrite"`
	LogLevel  string `mapstructure:"log_level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Framing:   bundle.LengthPrefixed.String(),
		Overwrite: false,
		LogLevel:  "info",
	}
}

// Strategy parses the configured framing.
func (c Config) Strategy() (bundle.Strategy, error) {
	return bundle.ParseStrategy(c.Framing)
}

// flagNames maps config keys to the command-line flags that override them.
var flagNames = map[string]string{
	KeyFraming:   "framing",
	KeyOverwrite: "overwrite",
	KeyLogLevel:  "log-level",
}

// Load resolves the configuration. Precedence, highest first: flags that
// were set explicitly, TXTBUNDLE_* environment variables, the config file at
// path (if path is non-empty), defaults. flags may be nil; flags missing from
// the set are ignored.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(KeyFraming, defaults.Framing)
	v.SetDefault(KeyOverwrite, defaults.Overwrite)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range flagNames {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := cfg.Strategy(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
