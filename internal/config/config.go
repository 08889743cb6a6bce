package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/csvstar/internal/utils"
)

// Global configuration structure.
type Global struct {
	// CSV dialect defaults, overridden per run by command flags
	Delimiter   string `mapstructure:"delimiter" yaml:"delimiter"`
	QuoteChar   string `mapstructure:"quote_char" yaml:"quote_char"`
	EscapeChar  string `mapstructure:"escape_char" yaml:"escape_char"`
	CommentChar string `mapstructure:"comment_char" yaml:"comment_char"`
	Encoding    string `mapstructure:"encoding" yaml:"encoding"`
	TrimFields  bool   `mapstructure:"trim_fields" yaml:"trim_fields"`
	Flexible    bool   `mapstructure:"flexible" yaml:"flexible"`

	// stat report
	TopK       int    `mapstructure:"top_k" yaml:"top_k"`
	StatFormat string `mapstructure:"stat_format" yaml:"stat_format"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Default returns the built-in configuration, used when nothing else is set.
func Default() *Global {
	return &Global{
		Delimiter:  ",",
		QuoteChar:  `"`,
		Encoding:   "utf-8",
		TopK:       100,
		StatFormat: "text",
		LogLevel:   "warn",
		LogFormat:  "text",
	}
}

// DefaultPath is ~/.csvstar/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".csvstar", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.csvstar/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CSVSTAR")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("quote_char", d.QuoteChar)
	v.SetDefault("escape_char", d.EscapeChar)
	v.SetDefault("comment_char", d.CommentChar)
	v.SetDefault("encoding", d.Encoding)
	v.SetDefault("trim_fields", d.TrimFields)
	v.SetDefault("flexible", d.Flexible)
	v.SetDefault("top_k", d.TopK)
	v.SetDefault("stat_format", d.StatFormat)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".csvstar"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine; a malformed one is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
