package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone database for minimal images

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings read from the environment
type Config struct {
	DB       DBConfig
	GRPCAddr string `env:"HEALTHFLOW_GRPC_ADDR" envDefault:":8080"`
	APIToken string `env:"API_TOKEN"            envDefault:"dev-token"`
	LogLevel string `env:"HEALTHFLOW_LOG_LEVEL" envDefault:"info"`
	Timezone string `env:"HEALTHFLOW_TIMEZONE"  envDefault:"UTC"`
	Kafka    KafkaConfig
}

// DBConfig mirrors the DB_* variables used by the docker setup.
// ConnStr wins over the individual fields when set.
type DBConfig struct {
	ConnStr      string        `env:"DB_CONN_STR"`
	Host         string        `env:"DB_HOST"           envDefault:"localhost"`
	Port         int           `env:"DB_PORT"           envDefault:"5432"`
	User         string        `env:"DB_USER"           envDefault:"postgres"`
	Password     string        `env:"DB_PASSWORD"       envDefault:"postgres"`
	Name         string        `env:"DB_NAME"           envDefault:"healthflow"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	StartupDelay time.Duration `env:"DB_STARTUP_DELAY"  envDefault:"2s"`
}

// KafkaConfig enables the device sample consumer when Brokers is not empty
type KafkaConfig struct {
	Brokers      []string      `env:"HEALTHFLOW_KAFKA_BROKERS"       envSeparator:","`
	Topic        string        `env:"HEALTHFLOW_KAFKA_TOPIC"         envDefault:"health.samples"`
	GroupID      string        `env:"HEALTHFLOW_KAFKA_GROUP"         envDefault:"healthflow-ingest"`
	PollTimeout  time.Duration `env:"HEALTHFLOW_KAFKA_POLL_TIMEOUT"  envDefault:"5s"`
	RetryBackoff time.Duration `env:"HEALTHFLOW_KAFKA_RETRY_BACKOFF" envDefault:"1s"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConnectionString returns DB_CONN_STR, or builds one from the individual fields
func (c DBConfig) ConnectionString() string {
	if c.ConnStr != "" {
		return c.ConnStr
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// Location resolves the configured time zone, in which week and month
// chart buckets are computed
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(strings.TrimSpace(c.Timezone))
	if err != nil {
		return nil, fmt.Errorf("invalid HEALTHFLOW_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// KafkaEnabled reports whether a broker list was configured
func (c Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}
