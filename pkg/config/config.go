package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is missing or a field is unset.
const (
	DefaultMaxBatchSize      = 50
	DefaultMaxRetryAttempts  = 3
	DefaultBackoffBaseMillis = 500
)

type GitHubConfig struct {
	Token      string `yaml:"token"`
	Owner      string `yaml:"owner"`
	Repo       string `yaml:"repo"`
	CheckRunID int64  `yaml:"check_run_id"`
}

type Config struct {
	MaxBatchSize      int          `yaml:"max_batch_size"`
	MaxRetryAttempts  int          `yaml:"max_retry_attempts"`
	BackoffBaseMillis int          `yaml:"backoff_base_millis"`
	GitHub            GitHubConfig `yaml:"github"`
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".vibeguard")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func DefaultConfig() *Config {
	return &Config{
		MaxBatchSize:      DefaultMaxBatchSize,
		MaxRetryAttempts:  DefaultMaxRetryAttempts,
		BackoffBaseMillis: DefaultBackoffBaseMillis,
	}
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// 0600 permissions (holds the GitHub token)
	return os.WriteFile(path, data, 0600)
}

// Validate checks the recognized options for usable ranges.
func (c *Config) Validate() error {
	if c.MaxBatchSize < 1 {
		return fmt.Errorf("max_batch_size must be at least 1, got %d", c.MaxBatchSize)
	}
	if c.MaxRetryAttempts < 0 {
		return fmt.Errorf("max_retry_attempts must not be negative, got %d", c.MaxRetryAttempts)
	}
	if c.BackoffBaseMillis < 1 {
		return fmt.Errorf("backoff_base_millis must be at least 1, got %d", c.BackoffBaseMillis)
	}
	return nil
}
