package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		Env       string `yaml:"env"`
		PublicURL string `yaml:"public_url"` // used in email links
		// AllowedOrigins limits CORS and websocket handshakes; empty allows any.
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		AutoMigrate  bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
	} `yaml:"email"`

	Notifier struct {
		PollInterval  time.Duration `yaml:"poll_interval"`
		BatchSize     int           `yaml:"batch_size"`
		MaxAttempts   int           `yaml:"max_attempts"`
		RetentionDays int           `yaml:"retention_days"`
		Channels      []string      `yaml:"channels"` // database, mail, broadcast
	} `yaml:"notifier"`

	NATS struct {
		URL     string `yaml:"url"`
		Subject string `yaml:"subject"`
		Stream  string `yaml:"stream"`
	} `yaml:"nats"`

	Telemetry struct {
		OTLPEndpoint string `yaml:"otlp_endpoint"`
		ServiceName  string `yaml:"service_name"`
	} `yaml:"telemetry"`

	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	FirstAdmin struct {
		Email string `yaml:"email"`
		Name  string `yaml:"name"`
	} `yaml:"first_admin"`
}

var AppConfig *Config

// Load reads the YAML file at path and applies defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// FromEnv builds a config from environment variables only. It is what the
// test harness and container deployments use.
func FromEnv() *Config {
	var cfg Config

	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Database.AutoMigrate = os.Getenv("DATABASE_AUTO_MIGRATE") == "true"
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Server.PublicURL = os.Getenv("PUBLIC_URL")
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.NATS.URL = os.Getenv("NATS_URL")
	cfg.Telemetry.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.FirstAdmin.Email = os.Getenv("FIRST_ADMIN_EMAIL")

	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 4000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.PublicURL == "" {
		c.Server.PublicURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 60
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "CharityBridge"
	}
	if c.Notifier.PollInterval == 0 {
		c.Notifier.PollInterval = 5 * time.Second
	}
	if c.Notifier.BatchSize == 0 {
		c.Notifier.BatchSize = 50
	}
	if c.Notifier.MaxAttempts == 0 {
		c.Notifier.MaxAttempts = 5
	}
	if c.Notifier.RetentionDays == 0 {
		c.Notifier.RetentionDays = 14
	}
	if len(c.Notifier.Channels) == 0 {
		c.Notifier.Channels = []string{"database", "mail", "broadcast"}
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = "charitybridge.notifications"
	}
	if c.NATS.Stream == "" {
		c.NATS.Stream = "CHARITYBRIDGE"
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "charitybridge"
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 2
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
	if c.FirstAdmin.Name == "" {
		c.FirstAdmin.Name = "Administrator"
	}
}

// IsProduction reports whether internal error details must be hidden.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// LoadConfig fills AppConfig. With DATABASE_URL set the environment wins,
// otherwise the YAML file at CONFIG_PATH (default config/config.yaml).
func LoadConfig() {
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("loading configuration from environment")
		AppConfig = FromEnv()
		return
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
