// Package config loads process configuration from the environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Token    string `env:"TOKEN,required"`
	AppEnv   string `env:"APP_ENV,default=development"`
	LogLevel string `env:"LOG_LEVEL"`
	GuildID  string `env:"GUILD_ID"`

	HTTPAddr  string `env:"HTTP_ADDR,default=:8080"`
	APISecret string `env:"API_SECRET"`

	Database Database
	Redis    Redis

	RankSyncSchedule string  `env:"RANK_SYNC_SCHEDULE,default=@every 1h"`
	CommandRate      float64 `env:"COMMAND_RATE,default=1"`
	CommandBurst     int     `env:"COMMAND_BURST,default=5"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

type Database struct {
	Driver     string `env:"DB_DRIVER,default=sqlite"`
	SQLitePath string `env:"SQLITE_PATH,default=flights.db"`
	Host       string `env:"PG_HOST"`
	Port       string `env:"PG_PORT,default=5432"`
	User       string `env:"PG_USER"`
	Name       string `env:"PG_DB"`
	Password   string `env:"PG_PASSWORD"`
}

// DSN returns the Postgres connection string
func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Name)
}

type Redis struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT,default=6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// Enabled reports whether a Redis host was configured
func (r Redis) Enabled() bool { return r.Host != "" }

// Addr returns host:port
func (r Redis) Addr() string { return r.Host + ":" + r.Port }

// Load reads envFile if it exists and decodes the environment into a Config.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks combinations envdecode cannot express
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("SQLITE_PATH must not be empty")
		}
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return errors.New("PG_HOST and PG_DB are required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.CommandRate <= 0 || c.CommandBurst <= 0 {
		return errors.New("COMMAND_RATE and COMMAND_BURST must be positive")
	}
	return nil
}
