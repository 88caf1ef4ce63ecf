package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Bridge    BridgeConfig
	UI        UIConfig
	Host      HostConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// BridgeConfig holds host connection settings.
type BridgeConfig struct {
	Endpoint      string        `envconfig:"IGNITION_BRIDGE_URL" default:"ws://127.0.0.1:8765/bridge"`
	HealthURL     string        `envconfig:"IGNITION_HEALTH_URL" default:"http://127.0.0.1:8765/health"`
	PollInterval  time.Duration `envconfig:"IGNITION_POLL_INTERVAL" default:"80ms"`
	DialFailures  uint32        `envconfig:"IGNITION_DIAL_FAILURES" default:"3"`
	DialCooldown  time.Duration `envconfig:"IGNITION_DIAL_COOLDOWN" default:"2s"`
	HandshakeWait time.Duration `envconfig:"IGNITION_HANDSHAKE_TIMEOUT" default:"5s"`
}

// UIConfig holds presentation-layer settings.
type UIConfig struct {
	UndoWindow      time.Duration `envconfig:"IGNITION_UNDO_WINDOW" default:"5s"`
	LogDisplayLimit int           `envconfig:"IGNITION_LOG_DISPLAY_LIMIT" default:"200"`
	ToastDuration   time.Duration `envconfig:"IGNITION_TOAST_DURATION" default:"3s"`
	DialogPolicy    string        `envconfig:"IGNITION_DIALOG_POLICY" default:"queue"`
	PrefsPath       string        `envconfig:"IGNITION_PREFS"`
}

// HostConfig holds development host settings.
type HostConfig struct {
	Addr         string        `envconfig:"IGNITION_HOST_ADDR" default:"127.0.0.1"`
	Port         string        `envconfig:"IGNITION_HOST_PORT" default:"8765"`
	PushInterval time.Duration `envconfig:"IGNITION_PUSH_INTERVAL" default:"800ms"`
	SeedFile     string        `envconfig:"IGNITION_SEED"`
	SearchRoots  []string      `envconfig:"IGNITION_SEARCH_ROOTS"`
	HistoryLimit int           `envconfig:"IGNITION_HISTORY_LIMIT" default:"50"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	File        string `envconfig:"LOG_FILE"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Dialog policies accepted by UI.DialogPolicy.
const (
	DialogQueue   = "queue"
	DialogReject  = "reject"
	DialogReplace = "replace"
)

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects values the components cannot work with.
func (c *Config) Validate() error {
	switch c.UI.DialogPolicy {
	case DialogQueue, DialogReject, DialogReplace:
	default:
		return fmt.Errorf("invalid dialog policy %q", c.UI.DialogPolicy)
	}
	if c.Bridge.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.UI.UndoWindow <= 0 {
		return fmt.Errorf("undo window must be positive")
	}
	if c.UI.LogDisplayLimit <= 0 {
		return fmt.Errorf("log display limit must be positive")
	}
	return nil
}

// HostAddress returns the development host listen address.
func (c *Config) HostAddress() string {
	return c.Host.Addr + ":" + c.Host.Port
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Bridge: BridgeConfig{
			Endpoint:      "ws://127.0.0.1:8765/bridge",
			HealthURL:     "http://127.0.0.1:8765/health",
			PollInterval:  80 * time.Millisecond,
			DialFailures:  3,
			DialCooldown:  2 * time.Second,
			HandshakeWait: 5 * time.Second,
		},
		UI: UIConfig{
			UndoWindow:      5 * time.Second,
			LogDisplayLimit: 200,
			ToastDuration:   3 * time.Second,
			DialogPolicy:    DialogQueue,
		},
		Host: HostConfig{
			Addr:         "127.0.0.1",
			Port:         "8765",
			PushInterval: 800 * time.Millisecond,
			HistoryLimit: 50,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
