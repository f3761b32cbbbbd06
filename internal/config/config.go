package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DBMaxConns      int32
	DBTraceQueries  bool
	LogLevel        string
	MigrateOnStart  bool
	DefaultFuelType string
	DialogTTL       time.Duration
	MetricsEnabled  bool
}

func Load() (Config, error) {
	return LoadFrom(filepath.Join(".", ".env"))
}

// LoadFrom reads configuration from the process environment, falling back to
// the dotenv file at envPath. A missing file is not an error.
func LoadFrom(envPath string) (Config, error) {
	values := map[string]string{}
	if _, err := os.Stat(envPath); err == nil {
		fileValues, err := godotenv.Read(envPath)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", envPath, err)
		}
		values = fileValues
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("stat %s: %w", envPath, err)
	}
	lookup := func(key string) string {
		return firstNonEmpty(os.Getenv(key), values[key])
	}

	cfg := Config{
		Port:            8080,
		LogLevel:        "info",
		MigrateOnStart:  true,
		DefaultFuelType: "petrol",
		DialogTTL:       30 * time.Minute,
		MetricsEnabled:  true,
	}

	if portRaw := lookup("PORT"); portRaw != "" {
		port, err := strconv.Atoi(portRaw)
		if err != nil || port <= 0 {
			return Config{}, fmt.Errorf("invalid PORT: %q", portRaw)
		}
		cfg.Port = port
	}

	cfg.DatabaseURL = lookup("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required (environment variable or .env)")
	}

	if raw := lookup("DB_MAX_CONNS"); raw != "" {
		conns, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || conns <= 0 {
			return Config{}, fmt.Errorf("invalid DB_MAX_CONNS: %q", raw)
		}
		cfg.DBMaxConns = int32(conns)
	}

	var err error
	if cfg.DBTraceQueries, err = parseBool(lookup("DB_TRACE_QUERIES"), false); err != nil {
		return Config{}, fmt.Errorf("invalid DB_TRACE_QUERIES: %w", err)
	}
	if cfg.MigrateOnStart, err = parseBool(lookup("MIGRATE_ON_START"), cfg.MigrateOnStart); err != nil {
		return Config{}, fmt.Errorf("invalid MIGRATE_ON_START: %w", err)
	}
	if cfg.MetricsEnabled, err = parseBool(lookup("METRICS_ENABLED"), cfg.MetricsEnabled); err != nil {
		return Config{}, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}

	if level := lookup("LOG_LEVEL"); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if fuelType := lookup("DEFAULT_FUEL_TYPE"); fuelType != "" {
		cfg.DefaultFuelType = strings.ToLower(fuelType)
	}

	if raw := lookup("DIALOG_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("invalid DIALOG_TTL: %q", raw)
		}
		cfg.DialogTTL = ttl
	}

	return cfg, nil
}

func parseBool(raw string, fallback bool) (bool, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseBool(raw)
}

func firstNonEmpty(candidates ...string) string {
	for _, candidate := range candidates {
		if value := strings.TrimSpace(candidate); value != "" {
			return value
		}
	}
	return ""
}
