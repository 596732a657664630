package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when neither --config nor CONFIG_PATH is set.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL           string        `yaml:"base_url"`
		APIKey            string        `yaml:"api_key"`
		HistoryDays       int           `yaml:"history_days"`
		RequestsPerSecond float64       `yaml:"requests_per_second"`
		Burst             int           `yaml:"burst"`
		Timeout           time.Duration `yaml:"timeout"`
	} `yaml:"data_source"`
	Watchlist []string `yaml:"watchlist"`
	Schedule  struct {
		DailyCron  string `yaml:"daily_cron"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		CORSOrigins  []string      `yaml:"cors_origins"`
	} `yaml:"server"`
	Cache struct {
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		TTL           time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Logging struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		FilePath string `yaml:"file_path"` // empty disables file output
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads .env (when present) and the YAML file, then applies
// environment variable overrides and defaults. A missing YAML file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("TELEGRAM_BOT_TOKEN", &c.Telegram.BotToken)
	setString("TELEGRAM_CHAT_ID", &c.Telegram.ChatID)
	setString("DATA_SOURCE_BASE_URL", &c.DataSource.BaseURL)
	setString("DATA_SOURCE_API_KEY", &c.DataSource.APIKey)
	setString("HTTPS_PROXY", &c.Proxy)
	setString("CRON_DAILY", &c.Schedule.DailyCron)
	setString("SERVER_ADDR", &c.Server.Addr)
	setString("REDIS_ADDR", &c.Cache.RedisAddr)
	setString("REDIS_PASSWORD", &c.Cache.RedisPassword)
	setString("LOG_LEVEL", &c.Logging.Level)
	setString("LOG_FORMAT", &c.Logging.Format)
	setString("LOG_PATH", &c.Logging.FilePath)

	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Watchlist = splitList(v)
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %w", err)
		}
		c.Cache.RedisDB = db
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL value: %w", err)
		}
		c.Cache.TTL = ttl
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		c.Schedule.RunOnStart = v == "true" || v == "1"
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.HistoryDays == 0 {
		c.DataSource.HistoryDays = 300
	}
	if c.DataSource.RequestsPerSecond == 0 {
		c.DataSource.RequestsPerSecond = 2
	}
	if c.DataSource.Burst == 0 {
		c.DataSource.Burst = 4
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 30 * time.Second
	}
	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = "0 30 16 * * 1-5"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 15 * time.Minute
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "pretty"
	}
	for i, s := range c.Watchlist {
		c.Watchlist[i] = strings.ToUpper(strings.TrimSpace(s))
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	if c.DataSource.HistoryDays < 50 {
		return fmt.Errorf("data_source.history_days must be at least 50")
	}
	if c.DataSource.RequestsPerSecond < 0 {
		return fmt.Errorf("data_source.requests_per_second must not be negative")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	return nil
}

// ValidateBot checks the fields the Telegram bot needs.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must contain at least one symbol")
	}
	return nil
}

// ValidateServer checks the fields the HTTP API needs.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}
