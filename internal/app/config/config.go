package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabaseURL         string        `yaml:"database_url"`
	HTTPAddr            string        `yaml:"http_addr"`
	LogLevel            string        `yaml:"log_level"`
	UpstreamBaseURL     string        `yaml:"upstream_base_url"`
	UpstreamAPIKey      string        `yaml:"upstream_api_key"`
	UpstreamTimeout     time.Duration `yaml:"upstream_timeout"`
	UpstreamMaxRetries  uint64        `yaml:"upstream_max_retries"`
	CacheTTL            time.Duration `yaml:"cache_ttl"`
	AllProjectsPageSize int           `yaml:"all_projects_page_size"`
	EventWorkers        int           `yaml:"event_workers"`
	MigrationsDir       string        `yaml:"migrations_dir"`
}

func defaults() Config {
	return Config{
		HTTPAddr:            ":8080",
		LogLevel:            "info",
		UpstreamTimeout:     10 * time.Second,
		UpstreamMaxRetries:  3,
		CacheTTL:            5 * time.Second,
		AllProjectsPageSize: 1000,
		EventWorkers:        4,
		MigrationsDir:       "migrations",
	}
}

// Load reads an optional YAML file named by PROJECTVIEW_CONFIG, then applies
// environment overrides.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("PROJECTVIEW_CONFIG"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.UpstreamBaseURL == "" {
		return Config{}, fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if cfg.AllProjectsPageSize < 1 {
		return Config{}, fmt.Errorf("ALL_PROJECTS_PAGE_SIZE must be positive")
	}
	if cfg.EventWorkers < 1 {
		return Config{}, fmt.Errorf("EVENT_WORKERS must be positive")
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("UPSTREAM_BASE_URL"); v != "" {
		cfg.UpstreamBaseURL = v
	}
	if v := os.Getenv("UPSTREAM_API_KEY"); v != "" {
		cfg.UpstreamAPIKey = v
	}
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		cfg.MigrationsDir = v
	}

	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
		}
		cfg.UpstreamTimeout = d
	}
	if v := os.Getenv("UPSTREAM_MAX_RETRIES"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid UPSTREAM_MAX_RETRIES: %w", err)
		}
		cfg.UpstreamMaxRetries = n
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}
	if v := os.Getenv("ALL_PROJECTS_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ALL_PROJECTS_PAGE_SIZE: %w", err)
		}
		cfg.AllProjectsPageSize = n
	}
	if v := os.Getenv("EVENT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid EVENT_WORKERS: %w", err)
		}
		cfg.EventWorkers = n
	}

	return nil
}
