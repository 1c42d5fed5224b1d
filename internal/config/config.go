package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// maxDBConns is the largest pool size pgxpool can hold (MaxConns is an int32).
const maxDBConns = math.MaxInt32

// Config contains all runtime settings for the task service.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration

	DBDriver         string
	DatabaseURL      string
	DBHost           string
	DBPort           int
	DBUser           string
	DBPassword       string
	DBName           string
	DBSSLMode        string
	DBPath           string
	DBMaxConns       int
	DBConnectTimeout time.Duration
}

// Load reads a .env file when one exists, then environment variables, and
// applies defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv is Load without the .env step.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:             envOrDefault("PORT", "5000"),
		ShutdownTimeout:  15 * time.Second,
		DBDriver:         strings.ToLower(envOrDefault("DB_DRIVER", DriverPostgres)),
		DatabaseURL:      trimmedEnv("DATABASE_URL"),
		DBHost:           envOrDefault("DB_HOST", "localhost"),
		DBPort:           5432,
		DBUser:           envOrDefault("DB_USER", "root"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           envOrDefault("DB_NAME", "todo"),
		DBSSLMode:        envOrDefault("DB_SSLMODE", "disable"),
		DBPath:           envOrDefault("DB_PATH", "todo.db"),
		DBMaxConns:       10,
		DBConnectTimeout: 10 * time.Second,
	}

	var err error
	cfg.DBPort, err = intFromEnv("DB_PORT", cfg.DBPort)
	if err != nil {
		return Config{}, err
	}
	cfg.DBMaxConns, err = intFromEnv("DB_MAX_CONNS", cfg.DBMaxConns)
	if err != nil {
		return Config{}, err
	}
	cfg.DBConnectTimeout, err = durationFromEnv("DB_CONNECT_TIMEOUT", cfg.DBConnectTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout, err = durationFromEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return Config{}, fmt.Errorf("invalid DB_DRIVER: %q (expected postgres|sqlite|memory)", cfg.DBDriver)
	}
	if cfg.DBMaxConns <= 0 || cfg.DBMaxConns > maxDBConns {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be between 1 and %d", maxDBConns)
	}
	if cfg.DBConnectTimeout <= 0 {
		return Config{}, fmt.Errorf("DB_CONNECT_TIMEOUT must be positive")
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT parse error: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envOrDefault(key, fallback string) string {
	v := trimmedEnv(key)
	if v == "" {
		return fallback
	}
	return v
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}
