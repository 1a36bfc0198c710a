package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wippyai/scale-codec/transcoder"
)

const (
	configName = "scalec"
	envPrefix  = "SCALEC"
)

// Config holds the settings shared by every command.
type Config struct {
	Metadata string `mapstructure:"metadata"`
	Address  string `mapstructure:"address"`
	CacheDir string `mapstructure:"cache_dir"`
	LogLevel string `mapstructure:"log_level"`
	MaxDepth int    `mapstructure:"max_depth"`
	Strict   bool   `mapstructure:"strict"`
}

// flagKeys maps persistent flag names to configuration keys.
var flagKeys = map[string]string{
	"metadata":  "metadata",
	"address":   "address",
	"cache-dir": "cache_dir",
	"log-level": "log_level",
	"max-depth": "max_depth",
	"strict":    "strict",
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.StringP("metadata", "m", "", "contract metadata (.json) or bundle (.contract)")
	flags.String("address", "", "contract address whose metadata is cached in --cache-dir")
	flags.String("cache-dir", "", "metadata cache directory (default $HOME/.scalec/cache)")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.Int("max-depth", transcoder.DefaultMaxDepth, "maximum type nesting depth")
	flags.Bool("strict", false, "reject trailing bytes when decoding")
}

// loadConfig merges defaults, scalec.yaml, SCALEC_* environment variables and
// flags, in increasing order of precedence.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet, file string) (*Config, error) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("max_depth", transcoder.DefaultMaxDepth)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".scalec"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", cfg.MaxDepth)
	}
	if _, err := zap.ParseAtomicLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}
	return nil
}

// codecOptions translates the configuration into transcoder options.
func (c *Config) codecOptions() []transcoder.Option {
	opts := []transcoder.Option{transcoder.WithMaxDepth(c.MaxDepth)}
	if c.Strict {
		opts = append(opts, transcoder.WithStrictDecode())
	}
	return opts
}
