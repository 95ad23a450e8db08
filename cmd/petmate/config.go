package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"petmate/internal/domain/feed"

	"github.com/spf13/viper"
)

// clientConfig: config del cliente de terminal.
type clientConfig struct {
	Server       string        `mapstructure:"server"`
	Lang         string        `mapstructure:"lang"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Fixture      bool          `mapstructure:"fixture"`
	FixtureDelay time.Duration `mapstructure:"fixture-delay"`
	LogFile      string        `mapstructure:"log-file"`
	LogLevel     string        `mapstructure:"log-level"`
	QueueSize    int           `mapstructure:"queue-size"`
}

func loadClientConfig(configPath string) (clientConfig, error) {
	var cfg clientConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PETMATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("server", "http://localhost:8080")
	v.SetDefault("lang", "en")
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("fixture", false)
	v.SetDefault("fixture-delay", feed.DefaultFixtureDelay)
	v.SetDefault("log-file", filepath.Join(home, ".config", "petmate", "petmate.log"))
	v.SetDefault("log-level", "info")
	v.SetDefault("queue-size", 64)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "petmate", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if strings.TrimSpace(cfg.Server) == "" {
		return cfg, errors.New("server is required")
	}
	return cfg, nil
}
