// Package config loads the bot configuration from defaults, an optional YAML
// file, a .env file and the process environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// ErrMissingToken is returned by Validate when no bot token is configured
var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")

// Config is the complete bot configuration
type Config struct {
	Telegram   TelegramConfig   `yaml:"telegram"`
	Store      StoreConfig      `yaml:"store"`
	Playground PlaygroundConfig `yaml:"playground"`
	Log        LogConfig        `yaml:"log"`
}

// TelegramConfig configures the Bot API client
type TelegramConfig struct {
	Token       string `yaml:"token" envconfig:"TELEGRAM_BOT_TOKEN"`
	Debug       bool   `yaml:"debug" envconfig:"TELEGRAM_DEBUG"`
	PollTimeout int    `yaml:"pollTimeout" envconfig:"TELEGRAM_POLL_TIMEOUT"`
}

// StoreConfig selects where user preferences are persisted
type StoreConfig struct {
	Path    string `yaml:"path" envconfig:"FILE_PATH"`
	Backend string `yaml:"backend" envconfig:"STORE_BACKEND"`
}

// PlaygroundConfig points at the execute endpoint
type PlaygroundConfig struct {
	URL string `yaml:"url" envconfig:"PLAYGROUND_URL"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Development bool   `yaml:"development" envconfig:"LOG_DEVELOPMENT"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Telegram: TelegramConfig{
			PollTimeout: 60,
		},
		Store: StoreConfig{
			Path:    "users.json",
			Backend: BackendJSON,
		},
		Playground: PlaygroundConfig{
			URL: "https://play.rust-lang.org/execute",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. configPath is optional; when set the file
// must exist. envFile defaults to ".env" and may be missing. Variables
// already in the environment win over the .env file.
func Load(configPath, envFile string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	for _, group := range []any{&cfg.Telegram, &cfg.Store, &cfg.Playground, &cfg.Log} {
		if err := envconfig.Process("", group); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks everything the bot needs to start
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return ErrMissingToken
	}
	if c.Telegram.PollTimeout < 0 {
		return fmt.Errorf("invalid poll timeout %d", c.Telegram.PollTimeout)
	}
	if u, err := url.Parse(c.Playground.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid playground url %q", c.Playground.URL)
	}
	return c.Store.Validate()
}

// Validate checks the store settings alone, for commands that only read the store
func (s StoreConfig) Validate() error {
	if s.Path == "" {
		return errors.New("FILE_PATH is not set")
	}
	switch s.Backend {
	case BackendJSON, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown store backend %q", s.Backend)
	}
}
