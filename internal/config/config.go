package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         string `yaml:"port"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
	} `yaml:"server"`
	Redis struct {
		Addr       string `yaml:"addr"`
		Password   string `yaml:"password"`
		DB         int    `yaml:"db"`
		MaxRetries int    `yaml:"max_retries"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Session struct {
		TTL    string `yaml:"ttl"`
		Cookie string `yaml:"cookie"`
		Secure bool   `yaml:"secure"`
	} `yaml:"session"`
	Quiz struct {
		TTL    string `yaml:"ttl"`
		Points int    `yaml:"points"`
	} `yaml:"quiz"`
	Trivia struct {
		BaseURL    string   `yaml:"base_url"`
		Amount     int      `yaml:"amount"`
		Difficulty string   `yaml:"difficulty"`
		Type       string   `yaml:"type"`
		Lang       string   `yaml:"lang"`
		Delay      string   `yaml:"delay"`
		Timeout    string   `yaml:"timeout"`
		Topics     []string `yaml:"topics"`
	} `yaml:"trivia"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but treats a missing file as an empty config,
// so the service can start with in-memory adapters and built-in defaults.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		return Config{}, nil
	}
	return cfg, err
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// IntOr returns v unless it is zero or negative.
func IntOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

// StringOr returns v unless it is empty.
func StringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
