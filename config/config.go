package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Data       DataConfig       `yaml:"data"`
	Auth       AuthConfig       `yaml:"auth"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	StaticDir       string  `yaml:"static_dir"`
}

// DataConfig holds the location of the JSON data documents.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// AuthConfig holds the login flow configuration.
type AuthConfig struct {
	DefaultPassword   string        `yaml:"default_password"`
	AllowlistPrefixes []string      `yaml:"allowlist_prefixes"`
	CodeTTLMinutes    int           `yaml:"code_ttl_minutes"`
	CodeTTL           time.Duration `yaml:"-"` // Ignored by YAML parser
}

// PushConfig holds the VAPID keys and the admin subscription that
// receives order alerts and login codes.
type PushConfig struct {
	PublicKey  string           `yaml:"vapid_public_key"`
	PrivateKey string           `yaml:"vapid_private_key"`
	Subject    string           `yaml:"subject"`
	TTL        int              `yaml:"ttl"`
	Admin      PushSubscription `yaml:"admin_subscription"`
}

// PushSubscription identifies a single Web Push endpoint.
type PushSubscription struct {
	Endpoint string `yaml:"endpoint"`
	P256DH   string `yaml:"p256dh"`
	Auth     string `yaml:"auth"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "./public"
	}

	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "./data"
	}

	if cfg.Auth.DefaultPassword == "" {
		cfg.Auth.DefaultPassword = "admin123"
	}
	if cfg.Auth.CodeTTLMinutes <= 0 {
		cfg.Auth.CodeTTLMinutes = 60
	}
	cfg.Auth.CodeTTL = time.Duration(cfg.Auth.CodeTTLMinutes) * time.Minute

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
