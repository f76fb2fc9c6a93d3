package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"gitlab-gateway/internal/logger"
	"gitlab-gateway/internal/platform/gitlab"
	"gitlab-gateway/internal/server"
)

// Config is read once at startup and passed around explicitly.
type Config struct {
	HTTP   server.Config
	Logger logger.Config
	GitLab gitlab.Config
}

// New reads configuration from the given env file plus the process
// environment; the environment wins on conflicts.
func New(path string) (*Config, error) {
	var cfg Config

	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	err = cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from the process environment only. Used by the
// CLI, which has no config file flag.
func FromEnv() (*Config, error) {
	var cfg Config

	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}

	return &cfg, nil
}
