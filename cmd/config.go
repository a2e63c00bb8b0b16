package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/adapters/out/persistence"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	HTTPPort string

	DBDriver   string
	DBDSN      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret       string
	LogLevel        string
	InventoryPolicy string

	RelaySchedule    string
	RelayBatchSize   int
	RelayMaxAttempts int

	ShutdownTimeout time.Duration
}

// LoadConfig reads configuration in order: envFile (if present), environment,
// then command line flags.
func LoadConfig(envFile string, args []string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var parseErrs []error
	intEnv := func(key string, fallback int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("%s: %w", key, err))
			return fallback
		}
		return n
	}

	cfg := Config{
		HTTPPort:         env("HTTP_PORT", "8080"),
		DBDriver:         env("DB_DRIVER", persistence.DriverSQLite),
		DBDSN:            env("DB_DSN", "dispatch.db"),
		DBHost:           env("DB_HOST", "localhost"),
		DBPort:           env("DB_PORT", "5432"),
		DBUser:           env("DB_USER", ""),
		DBPassword:       env("DB_PASSWORD", ""),
		DBName:           env("DB_NAME", "dispatch"),
		DBSslMode:        env("DB_SSLMODE", "disable"),
		JWTSecret:        env("JWT_SECRET", ""),
		LogLevel:         env("LOG_LEVEL", "info"),
		InventoryPolicy:  env("DISPATCH_INVENTORY_POLICY", string(commands.InventoryStrict)),
		RelaySchedule:    env("NOTIFICATION_RELAY_SCHEDULE", jobs.DefaultRelaySchedule),
		RelayBatchSize:   intEnv("NOTIFICATION_RELAY_BATCH", 50),
		RelayMaxAttempts: intEnv("NOTIFICATION_MAX_ATTEMPTS", 5),
		ShutdownTimeout:  10 * time.Second,
	}

	if v := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
		} else {
			cfg.ShutdownTimeout = d
		}
	}

	fs := pflag.NewFlagSet("dispatch", pflag.ContinueOnError)
	fs.StringVarP(&cfg.HTTPPort, "port", "p", cfg.HTTPPort, "port to listen on")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver: sqlite or postgres")
	fs.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "sqlite database file or DSN")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.InventoryPolicy, "inventory-policy", cfg.InventoryPolicy, "strict or best_effort")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := errors.Join(append(parseErrs, cfg.Validate())...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %q", c.HTTPPort))
	}
	if c.DBDriver != persistence.DriverSQLite && c.DBDriver != persistence.DriverPostgres {
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if _, err := commands.ParseInventoryPolicy(c.InventoryPolicy); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.RelayBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("NOTIFICATION_RELAY_BATCH must be positive, got %d", c.RelayBatchSize))
	}
	if c.RelayMaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("NOTIFICATION_MAX_ATTEMPTS must be positive, got %d", c.RelayMaxAttempts))
	}

	return errors.Join(errs...)
}

func (c Config) Database() persistence.Config {
	return persistence.Config{
		Driver:   c.DBDriver,
		DSN:      c.DBDSN,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func (c Config) Relay() jobs.RelayConfig {
	return jobs.RelayConfig{
		Schedule:    c.RelaySchedule,
		BatchSize:   c.RelayBatchSize,
		MaxAttempts: c.RelayMaxAttempts,
	}
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
