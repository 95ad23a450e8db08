package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// FeedSource elige de dónde salen las recomendaciones.
type FeedSource string

const (
	FeedSourceStore   FeedSource = "store"
	FeedSourceFixture FeedSource = "fixture"
)

// Config del servicio. Todo viene de env vars (ver README de despliegue).
type Config struct {
	Port  string `env:"PORT"   envDefault:"8080"`
	DBDSN string `env:"DB_DSN"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME"   envDefault:"petmate"`

	// AuthDevMode habilita el header X-Debug-User-ID (solo dev/tests).
	AuthDevMode bool `env:"AUTH_DEV_MODE" envDefault:"false"`

	JWTSecret     string        `env:"JWT_SECRET"`
	JWTIssuer     string        `env:"JWT_ISSUER"      envDefault:"petmate"`
	TokenTTL      time.Duration `env:"TOKEN_TTL"       envDefault:"24h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"1h"`

	FeedSource       FeedSource    `env:"FEED_SOURCE"        envDefault:"store"`
	FeedFixtureDelay time.Duration `env:"FEED_FIXTURE_DELAY" envDefault:"1s"`
	FeedLimit        int           `env:"FEED_LIMIT"         envDefault:"20"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parsea env y valida combinaciones.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.FeedSource {
	case FeedSourceStore, FeedSourceFixture:
	default:
		return fmt.Errorf("FEED_SOURCE must be %q or %q, got %q", FeedSourceStore, FeedSourceFixture, c.FeedSource)
	}
	if c.FeedLimit <= 0 {
		return fmt.Errorf("FEED_LIMIT must be positive")
	}
	if c.TokenTTL <= 0 || c.ResetTokenTTL <= 0 {
		return fmt.Errorf("token ttls must be positive")
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

// Default devuelve la config con los envDefault aplicados, sin leer env.
// La usan router/tests cuando no se pasa config explícita.
func Default() Config {
	var cfg Config
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return cfg
}
