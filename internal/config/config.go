package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/xxxsen/common/logger"
)

const (
	defaultPort          = 4000
	defaultJWTTTLSeconds = 3600
	defaultStorePath     = "./database/db.json"
)

type Config struct {
	Port          int              `json:"port"`
	JWTSecret     string           `json:"jwt_secret"`
	JWTTTLSeconds int              `json:"jwt_ttl_seconds"`
	BcryptCost    int              `json:"bcrypt_cost"`
	CORSAllowlist []string         `json:"cors_allowlist"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Store         StoreConfig      `json:"store"`
	Backup        BackupConfig     `json:"backup"`
}

type StoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type BackupConfig struct {
	Enabled bool        `json:"enabled"`
	Spec    string      `json:"spec"`
	Store   StoreConfig `json:"store"`
}

// envOverrides carries the variables the service historically read from .env.
type envOverrides struct {
	Port      int    `env:"PORT"`
	JWTSecret string `env:"JWT_SECRET"`
}

// Load reads the JSON file at path, if any, then applies environment
// overrides and defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if overrides.Port != 0 {
		cfg.Port = overrides.Port
	}
	if overrides.JWTSecret != "" {
		cfg.JWTSecret = overrides.JWTSecret
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.JWTTTLSeconds <= 0 {
		c.JWTTTLSeconds = defaultJWTTTLSeconds
	}
	if c.LogConfig.Level == "" {
		c.LogConfig.Level = "info"
	}
	defaultStore(&c.Store)
	if c.Backup.Enabled {
		if strings.TrimSpace(c.Backup.Spec) == "" {
			return fmt.Errorf("backup.spec is required when backup is enabled")
		}
		if c.Backup.Store.Type == "" {
			return fmt.Errorf("backup.store.type is required when backup is enabled")
		}
	}
	return nil
}

func defaultStore(sc *StoreConfig) {
	if sc.Type == "" {
		sc.Type = "local"
	}
	if strings.EqualFold(sc.Type, "local") && sc.Data == nil {
		sc.Data = map[string]interface{}{"path": defaultStorePath}
	}
}
