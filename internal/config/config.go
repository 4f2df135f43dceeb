// Load envs from .env
// Load YAML config
// Apply env overrides and default values
// Validate config

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"jobscraper/internal/errors"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	// Search defaults, used by scheduled runs and the CLI
	Keywords  []string `yaml:"keywords"`
	Location  string   `yaml:"location"`
	Pages     int      `yaml:"pages"`
	Platforms string   `yaml:"platforms"`

	// Browser
	Headless          bool    `yaml:"headless"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Concurrency       int     `yaml:"concurrency"`
	ScreenshotDir     string  `yaml:"screenshot_dir"`

	// Pipeline
	StorePath            string `yaml:"store_path"`
	RecencyWindowHours   int    `yaml:"recency_window_hours"`
	RepostThresholdHours int    `yaml:"repost_threshold_hours"`
	MaxPages             int    `yaml:"max_pages"`
	MaxKeywords          int    `yaml:"max_keywords"`

	// Service
	Port     int    `yaml:"port"`
	Schedule string `yaml:"schedule"`
	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	// Optional sinks
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
	RedisURL       string `yaml:"redis_url" env:"REDIS_URL"`
	RedisStream    string `yaml:"redis_stream"`
}

// Load reads .env, then the YAML file named by CONFIG_PATH (or DefaultPath).
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

// LoadFile builds a Config from path, env overrides and defaults. A missing
// file is fine; a malformed one is not.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{Headless: true}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Newf("invalid PORT %q", v)
		}
		c.Port = port
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		c.StorePath = v
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Newf("invalid HEADLESS %q", v)
		}
		c.Headless = headless
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogJSON = strings.EqualFold(v, "json")
	}
	if v := os.Getenv("SCRAPE_SCHEDULE"); v != "" {
		c.Schedule = v
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return errors.Newf("invalid TELEGRAM_CHAT_ID %q", chatID)
		}
		c.TelegramChatID = id
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if len(c.Keywords) == 0 {
		c.Keywords = []string{"python developer"}
	}
	if c.Location == "" {
		c.Location = "United States"
	}
	if c.Pages == 0 {
		c.Pages = 1
	}
	if c.Platforms == "" {
		c.Platforms = "all"
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = 0.5
	}
	if c.Concurrency == 0 {
		c.Concurrency = 2
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "logs/screenshots"
	}
	if c.StorePath == "" {
		c.StorePath = "jobs_output.json"
	}
	if c.RecencyWindowHours == 0 {
		c.RecencyWindowHours = 24
	}
	if c.RepostThresholdHours == 0 {
		c.RepostThresholdHours = 24
	}
	if c.MaxPages == 0 {
		c.MaxPages = 5
	}
	if c.MaxKeywords == 0 {
		c.MaxKeywords = 3
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate rejects values no run could work with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.Newf("port %d out of range", c.Port)
	}
	if c.Pages < 1 || c.MaxPages < 1 || c.MaxKeywords < 1 {
		return errors.New("pages, max_pages and max_keywords must be positive")
	}
	if c.RecencyWindowHours < 0 || c.RepostThresholdHours < 0 {
		return errors.New("recency_window_hours and repost_threshold_hours must not be negative")
	}
	if c.Concurrency < 1 {
		return errors.Newf("concurrency %d must be positive", c.Concurrency)
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	return nil
}

func (c *Config) RecencyWindow() time.Duration {
	return time.Duration(c.RecencyWindowHours) * time.Hour
}

func (c *Config) RepostThreshold() time.Duration {
	return time.Duration(c.RepostThresholdHours) * time.Hour
}

// Addr is the listen address for the HTTP service.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
