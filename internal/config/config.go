// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token   string `yaml:"token"`
	Workers int    `yaml:"workers"` // polling workers
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type MidjourneyConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type WebhookConfig struct {
	// BaseURL must be publicly reachable by the generation service. A
	// placeholder is used when unset so local development still starts.
	BaseURL string `yaml:"base_url"`
	Port    int    `yaml:"port"`
}

type StorageConfig struct {
	TempDir string `yaml:"temp_dir"`
}

type SchedulerConfig struct {
	SweepInterval time.Duration `yaml:"sweep_interval"`
	TaskTTL       time.Duration `yaml:"task_ttl"` // <=0 disables the stale-task sweeper
}

type Config struct {
	Bot        BotConfig        `yaml:"bot"`
	Log        LogConfig        `yaml:"log"`
	Midjourney MidjourneyConfig `yaml:"midjourney"`
	Webhook    WebhookConfig    `yaml:"webhook"`
	Storage    StorageConfig    `yaml:"storage"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`

	Runtime RuntimeConfig `yaml:"-"`
}

const placeholderWebhookBase = "https://your-public-url.ngrok.io"

func LoadConfig(configPath string, dev bool) (*Config, error) {
	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
		if dev {
			cfg.Log.Level = "debug"
		}
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Midjourney.BaseURL == "" {
		cfg.Midjourney.BaseURL = "https://api.userapi.ai"
	}
	if cfg.Webhook.BaseURL == "" {
		cfg.Webhook.BaseURL = os.Getenv("WEBHOOK_URL")
	}
	if cfg.Webhook.BaseURL == "" {
		cfg.Webhook.BaseURL = placeholderWebhookBase
	}
	if cfg.Webhook.Port <= 0 {
		cfg.Webhook.Port = 3000
	}
	if cfg.Scheduler.SweepInterval <= 0 {
		cfg.Scheduler.SweepInterval = time.Minute
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Midjourney.APIKey == "" {
		return nil, errors.New("midjourney.api_key is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// WebhookURL is the full callback address sent with every job submission.
func (c *Config) WebhookURL() string {
	return strings.TrimRight(c.Webhook.BaseURL, "/") + "/webhook"
}
