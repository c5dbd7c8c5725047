package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PlaceholderAPIKey is the value shipped in sample env files; it counts as unset.
const PlaceholderAPIKey = "YOUR_API_KEY_HERE"

// Config holds all application configuration.
type Config struct {
	YouTube struct {
		APIKey     string `yaml:"api_key"`
		ChannelID  string `yaml:"channel_id"`
		BaseURL    string `yaml:"base_url"`
		MaxResults int    `yaml:"max_results"`
	} `yaml:"youtube"`
	Market struct {
		BaseURL       string `yaml:"base_url"`
		DefaultSymbol string `yaml:"default_symbol"`
		UseMock       bool   `yaml:"use_mock"`
	} `yaml:"market"`
	Schedule struct {
		DashboardInterval  time.Duration `yaml:"dashboard_interval"`
		CheckpointInterval time.Duration `yaml:"checkpoint_interval"`
		VideoInterval      time.Duration `yaml:"video_interval"`
		PruneCron          string        `yaml:"prune_cron"`
		HistoryRetention   time.Duration `yaml:"history_retention"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Redis struct {
		Addr     string        `yaml:"addr"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"redis"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Prefs struct {
		File string `yaml:"file"`
	} `yaml:"prefs"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads .env (if present) and the YAML file, then applies environment
// variable overrides and defaults.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

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

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		cfg.YouTube.APIKey = v
	}
	if v := os.Getenv("YOUTUBE_CHANNEL_ID"); v != "" {
		cfg.YouTube.ChannelID = v
	}
	if v := os.Getenv("MARKET_API_URL"); v != "" {
		cfg.Market.BaseURL = v
	}
	if v := os.Getenv("MARKET_USE_MOCK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Market.UseMock = b
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("PREFS_FILE"); v != "" {
		cfg.Prefs.File = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DASHBOARD_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Schedule.DashboardInterval = d
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.YouTube.BaseURL == "" {
		cfg.YouTube.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	if cfg.YouTube.MaxResults == 0 {
		cfg.YouTube.MaxResults = 6
	}
	if cfg.Market.BaseURL == "" {
		cfg.Market.BaseURL = "http://localhost:8000"
	}
	if cfg.Market.DefaultSymbol == "" {
		cfg.Market.DefaultSymbol = "^NSEI"
	}
	if cfg.Schedule.DashboardInterval == 0 {
		cfg.Schedule.DashboardInterval = time.Minute
	}
	if cfg.Schedule.CheckpointInterval == 0 {
		cfg.Schedule.CheckpointInterval = time.Minute
	}
	if cfg.Schedule.VideoInterval == 0 {
		cfg.Schedule.VideoInterval = 10 * time.Minute
	}
	if cfg.Schedule.PruneCron == "" {
		cfg.Schedule.PruneCron = "0 30 21 * * *"
	}
	if cfg.Schedule.HistoryRetention == 0 {
		cfg.Schedule.HistoryRetention = 30 * 24 * time.Hour
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 12 * time.Hour
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/tradecraft.db"
	}
	if cfg.Prefs.File == "" {
		cfg.Prefs.File = "data/prefs.json"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if c.Market.BaseURL == "" && !c.Market.UseMock {
		return fmt.Errorf("market.base_url is required")
	}
	if c.Schedule.DashboardInterval < time.Second {
		return fmt.Errorf("schedule.dashboard_interval must be at least 1s")
	}
	if c.Schedule.CheckpointInterval < time.Second {
		return fmt.Errorf("schedule.checkpoint_interval must be at least 1s")
	}
	if c.Schedule.VideoInterval < time.Second {
		return fmt.Errorf("schedule.video_interval must be at least 1s")
	}
	if c.YouTube.MaxResults < 0 || c.YouTube.MaxResults > 50 {
		return fmt.Errorf("youtube.max_results must be within 0..50")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	return nil
}

// YouTubeConfigured reports whether live video data can be requested.
func (c *Config) YouTubeConfigured() bool {
	return c.YouTube.APIKey != "" && c.YouTube.ChannelID != "" && c.YouTube.APIKey != PlaceholderAPIKey
}

// TelegramConfigured reports whether decision alerts can be delivered.
func (c *Config) TelegramConfigured() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
