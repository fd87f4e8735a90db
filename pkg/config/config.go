package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	MarketData struct {
		BaseURL         string        `yaml:"base_url"`
		APIToken        string        `yaml:"api_token"`
		Timeout         time.Duration `yaml:"timeout"`
		RequestsPerSec  float64       `yaml:"requests_per_sec"`
		Burst           int           `yaml:"burst"`
		FutureExchange  string        `yaml:"future_exchange"`
		OptionExchange  string        `yaml:"option_exchange"`
		SnapshotTTL     time.Duration `yaml:"snapshot_ttl"`
		RefreshInterval time.Duration `yaml:"refresh_interval"`
	} `yaml:"marketdata"`
	Strategy struct {
		BaseURL       string        `yaml:"base_url"`
		Timeout       time.Duration `yaml:"timeout"`
		ModelName     string        `yaml:"model_name"`
		ModelProvider string        `yaml:"model_provider"`
		TokenFile     string        `yaml:"token_file"`
	} `yaml:"strategy"`
	Explorer struct {
		SessionTTL      time.Duration `yaml:"session_ttl"`
		DefaultPageSize int           `yaml:"default_page_size"`
	} `yaml:"explorer"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
		MemoryMaxSize int `yaml:"memory_max_size"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("MARKETDATA_BASE_URL"); v != "" {
		c.MarketData.BaseURL = v
	}
	if v := os.Getenv("MARKETDATA_API_TOKEN"); v != "" {
		c.MarketData.APIToken = v
	}
	if v := os.Getenv("STRATEGY_BASE_URL"); v != "" {
		c.Strategy.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port := splitHostPort(v)
		c.Cache.Redis.Host = host
		if port != 0 {
			c.Cache.Redis.Port = port
		}
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.MarketData.BaseURL == "" {
		return fmt.Errorf("marketdata.base_url is required")
	}
	if c.Strategy.BaseURL == "" {
		return fmt.Errorf("strategy.base_url is required")
	}
	if c.Explorer.DefaultPageSize < 1 || c.Explorer.DefaultPageSize > 100 {
		return fmt.Errorf("explorer.default_page_size must be in [1,100], got %d", c.Explorer.DefaultPageSize)
	}
	return nil
}

func splitHostPort(addr string) (string, int) {
	parts := strings.SplitN(addr, ":", 2)
	if len(parts) == 1 {
		return parts[0], 0
	}
	var port int
	fmt.Sscanf(parts[1], "%d", &port)
	return parts[0], port
}
