package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pstuifzand/go-textutils/transform"
	"github.com/pstuifzand/go-textutils/transform/operr"
)

const (
	defaultSocketPath = "/tmp/textutils.sock"
	defaultPrompt     = "textutils> "
)

// Config is the textutils configuration
type Config struct {
	Socket string     `mapstructure:"socket"`
	Log    LogConfig  `mapstructure:"log"`
	REPL   REPLConfig `mapstructure:"repl"`
	// Defaults holds per-utility options, keyed by utility id and option name
	Defaults map[string]map[string]any `mapstructure:"defaults"`
}

// LogConfig selects the log level and format
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// REPLConfig configures the interactive client
type REPLConfig struct {
	Color  bool   `mapstructure:"color"`
	Prompt string `mapstructure:"prompt"`
}

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() *Config {
	return &Config{
		Socket: defaultSocketPath,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		REPL: REPLConfig{
			Color:  true,
			Prompt: defaultPrompt,
		},
	}
}

// LoadConfig reads textutils.{yaml,toml,json}. An explicit path must exist;
// otherwise the XDG config directory, ~/.config/textutils and the working
// directory are searched, and a missing file means the defaults. Variables
// prefixed with TEXTUTILS_ override file values, e.g. TEXTUTILS_LOG_LEVEL.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	def := DefaultConfig()
	v.SetDefault("socket", def.Socket)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("repl.color", def.REPL.Color)
	v.SetDefault("repl.prompt", def.REPL.Prompt)

	v.SetEnvPrefix("TEXTUTILS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Configure viper
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("textutils")
		for _, dir := range configDirs() {
			v.AddConfigPath(dir)
		}
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, operr.Wrap(operr.ConfigurationError, "", "Cannot read configuration: "+err.Error(), err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, operr.Wrap(operr.ConfigurationError, "", "Invalid configuration: "+err.Error(), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and puts the per-utility defaults in
// canonical form
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Socket) == "" {
		return operr.Config("", "socket must not be empty.")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return operr.Config("", "log.format must be text or json, got %q.", c.Log.Format)
	}

	defaults, err := transform.CanonicalDefaults(c.Defaults)
	if err != nil {
		return err
	}
	c.Defaults = defaults
	return nil
}

// configDirs returns the directories searched for a configuration file
func configDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "textutils"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "textutils"))
	}
	return append(dirs, ".")
}
