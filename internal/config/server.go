package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// ServerConfig holds the process-level settings read once at startup.
type ServerConfig struct {
	Port     string `envconfig:"PORT" default:"8080"`
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadServer reads the server configuration from the environment.
func LoadServer() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process server config: %w", err)
	}
	return &cfg, nil
}
