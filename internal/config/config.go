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

type ServerConfig struct {
	Port int `yaml:"port"`
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

type AIConfig struct {
	OpenAIKey    string `yaml:"openai_key"`
	GeminiKey    string `yaml:"gemini_key"`
	DefaultModel string `yaml:"default_model"`
	MaxTokens    int    `yaml:"max_tokens"` // per-call enrichment token budget
}

type MailConfig struct {
	ResendKey string `yaml:"resend_key"`
	FromEmail string `yaml:"from_email"`
}

type SMSConfig struct {
	AccountSID    string   `yaml:"account_sid"`
	AuthToken     string   `yaml:"auth_token"`
	FromNumber    string   `yaml:"from_number"`
	SandboxNumber string   `yaml:"sandbox_number"`
	VIPWhitelist  []string `yaml:"vip_whitelist"`
}

// SenderNumber picks the outbound SMS number: the Twilio sandbox number in dev
// mode when one is configured, the production number otherwise.
func (s SMSConfig) SenderNumber(dev bool) string {
	if dev && s.SandboxNumber != "" {
		return s.SandboxNumber
	}
	return s.FromNumber
}

type WorkflowConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type CronConfig struct {
	Secret       string        `yaml:"secret"`
	DripInterval time.Duration `yaml:"drip_interval"`
	PollInterval time.Duration `yaml:"poll_interval"` // enrichment worker poll
}

type SecurityConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type RateLimitConfig struct {
	Window time.Duration `yaml:"window"`
	Max    int           `yaml:"max"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	AI        AIConfig        `yaml:"ai"`
	Mail      MailConfig      `yaml:"mail"`
	SMS       SMSConfig       `yaml:"sms"`
	Workflow  WorkflowConfig  `yaml:"workflow"`
	Cron      CronConfig      `yaml:"cron"`
	Security  SecurityConfig  `yaml:"security"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file, applies environment overrides for secrets,
// fills defaults, and validates required fields.
func LoadConfig(configPath string, dev bool) (*Config, error) {
	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.AI.DefaultModel == "" {
		cfg.AI.DefaultModel = "gpt-4o-mini"
	}
	if cfg.AI.MaxTokens <= 0 {
		cfg.AI.MaxTokens = 200
	}
	if cfg.Cron.DripInterval <= 0 {
		cfg.Cron.DripInterval = time.Hour
	}
	if cfg.Cron.PollInterval <= 0 {
		cfg.Cron.PollInterval = 5 * time.Second
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = 5 * time.Minute
	}
	if cfg.RateLimit.Max <= 0 {
		cfg.RateLimit.Max = 20
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Cron.Secret == "" && !dev {
		return nil, errors.New("cron.secret is required outside dev mode")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// applyEnvOverrides lets deployment environments inject secrets without
// touching the YAML file.
func applyEnvOverrides(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Database.URL, "DATABASE_URL")
	set(&cfg.Redis.URL, "REDIS_URL")
	set(&cfg.AI.OpenAIKey, "OPENAI_API_KEY")
	set(&cfg.AI.GeminiKey, "GEMINI_API_KEY")
	set(&cfg.Mail.ResendKey, "RESEND_API_KEY")
	set(&cfg.Mail.FromEmail, "PERCY_FROM_EMAIL")
	set(&cfg.SMS.AccountSID, "TWILIO_ACCOUNT_SID")
	set(&cfg.SMS.AuthToken, "TWILIO_AUTH_TOKEN")
	set(&cfg.SMS.FromNumber, "TWILIO_PHONE_NUMBER")
	set(&cfg.SMS.SandboxNumber, "TWILIO_SANDBOX_NUMBER")
	set(&cfg.Workflow.BaseURL, "N8N_BASE_URL")
	set(&cfg.Workflow.APIKey, "N8N_API_KEY")
	set(&cfg.Cron.Secret, "CRON_SECRET")
	set(&cfg.Security.JWTSecret, "JWT_SECRET")
	if v := os.Getenv("VIP_SMS_WHITELIST"); v != "" {
		cfg.SMS.VIPWhitelist = splitCSV(v)
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
