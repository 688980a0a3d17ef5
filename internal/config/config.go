// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AuthConfig carries the token-signing secret and the admin API key as an
// explicit immutable object injected where needed, never as process globals.
type AuthConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
	AdminAPIKey string        `yaml:"admin_api_key"`
}

type MailConfig struct {
	Driver   string `yaml:"driver"` // smtp|console
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	FromAddr string `yaml:"from_addr"`
	FromName string `yaml:"from_name"`
}

type RateLimitConfig struct {
	Window   time.Duration `yaml:"window"`
	AuthMax  int           `yaml:"auth_max"`
	EmailMax int           `yaml:"email_max"`
	FailOpen bool          `yaml:"fail_open"`
}

type CleanupConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Mail      MailConfig      `yaml:"mail"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 15 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 7 * 24 * time.Hour
	}
	if cfg.Mail.Driver == "" {
		cfg.Mail.Driver = "console"
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = 15 * time.Minute
	}
	if cfg.RateLimit.AuthMax <= 0 {
		cfg.RateLimit.AuthMax = 100
	}
	if cfg.RateLimit.EmailMax <= 0 {
		cfg.RateLimit.EmailMax = 5
	}
	if cfg.Cleanup.Interval <= 0 {
		cfg.Cleanup.Interval = time.Hour
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	if cfg.Auth.AdminAPIKey == "" {
		return nil, errors.New("auth.admin_api_key is required")
	}
	if cfg.Mail.Driver == "smtp" && (cfg.Mail.Host == "" || cfg.Mail.FromAddr == "") {
		return nil, errors.New("mail.host and mail.from_addr are required for the smtp driver")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
