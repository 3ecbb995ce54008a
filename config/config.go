package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// Config is everything the server needs at startup.
type Config struct {
	Port      int
	Debug     bool
	Migrate   bool
	LogLevel  string
	LogFormat string

	Database DatabaseConfig
	Redis    RedisConfig

	CacheTTL      time.Duration
	CacheWarmSpec string
}

// DatabaseConfig cấu hình cơ sở dữ liệu
type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// RedisConfig cấu hình Redis. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// GetDSN returns the explicit DSN or builds one from the parts.
func (c DatabaseConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// LoadEnv nạp biến môi trường từ tệp `.env`
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded, using process environment: %v", err)
	}
}

// Flags are the command line options. Each one can also come from the environment.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "port", Value: 8000, Usage: "run on the given port", EnvVars: []string{"PORT"}},
		&cli.BoolFlag{Name: "debug", Usage: "debug mode, echoes SQL", EnvVars: []string{"DEBUG"}},
		&cli.BoolFlag{Name: "migrate", Value: true, Usage: "auto-migrate the schema on startup", EnvVars: []string{"MIGRATE"}},
		&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error", EnvVars: []string{"LOG_LEVEL"}},
		&cli.StringFlag{Name: "log-format", Value: "json", Usage: "json or console", EnvVars: []string{"LOG_FORMAT"}},

		&cli.StringFlag{Name: "db-dsn", Usage: "postgres DSN, overrides the db-* parts", EnvVars: []string{"DB_DSN"}},
		&cli.StringFlag{Name: "db-host", Value: "localhost", EnvVars: []string{"DB_HOST"}},
		&cli.IntFlag{Name: "db-port", Value: 5432, EnvVars: []string{"DB_PORT"}},
		&cli.StringFlag{Name: "db-user", Value: "postgres", EnvVars: []string{"DB_USER"}},
		&cli.StringFlag{Name: "db-password", EnvVars: []string{"DB_PASSWORD"}},
		&cli.StringFlag{Name: "db-name", Value: "roomkeeper", EnvVars: []string{"DB_NAME"}},
		&cli.StringFlag{Name: "db-sslmode", Value: "disable", EnvVars: []string{"DB_SSLMODE"}},
		&cli.IntFlag{Name: "db-max-conns", Value: 10, EnvVars: []string{"DB_MAX_CONNS"}},
		&cli.IntFlag{Name: "db-max-idle", Value: 5, EnvVars: []string{"DB_MAX_IDLE"}},

		&cli.StringFlag{Name: "redis-addr", Usage: "redis address, empty disables caching", EnvVars: []string{"REDIS_ADDR"}},
		&cli.StringFlag{Name: "redis-password", EnvVars: []string{"REDIS_PASSWORD"}},
		&cli.IntFlag{Name: "redis-db", EnvVars: []string{"REDIS_DB"}},
		&cli.DurationFlag{Name: "cache-ttl", Value: 10 * time.Minute, EnvVars: []string{"CACHE_TTL"}},
		&cli.StringFlag{Name: "cache-warm-spec", Value: "@every 5m", Usage: "cron spec of the cache warm-up, empty disables it", EnvVars: []string{"CACHE_WARM_SPEC"}},
	}
}

// FromCLI reads the parsed flags.
func FromCLI(c *cli.Context) Config {
	return Config{
		Port:      c.Int("port"),
		Debug:     c.Bool("debug"),
		Migrate:   c.Bool("migrate"),
		LogLevel:  c.String("log-level"),
		LogFormat: c.String("log-format"),
		Database: DatabaseConfig{
			DSN:      c.String("db-dsn"),
			Host:     c.String("db-host"),
			Port:     c.Int("db-port"),
			User:     c.String("db-user"),
			Password: c.String("db-password"),
			Name:     c.String("db-name"),
			SSLMode:  c.String("db-sslmode"),
			MaxConns: c.Int("db-max-conns"),
			MaxIdle:  c.Int("db-max-idle"),
		},
		Redis: RedisConfig{
			Addr:     c.String("redis-addr"),
			Password: c.String("redis-password"),
			DB:       c.Int("redis-db"),
		},
		CacheTTL:      c.Duration("cache-ttl"),
		CacheWarmSpec: c.String("cache-warm-spec"),
	}
}
