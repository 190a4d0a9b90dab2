package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultBind               = ":8080"
	DefaultDBDriver           = "mysql"
	DefaultMaxBodyBytes int64 = 1 << 20
)

type Config struct {
	Bind               string
	DBDriver           string
	DBDSN              string
	MaxBodyBytes       int64
	CORSAllowedOrigins []string
	LogLevel           slog.Level
	Seed               bool
	SeedFile           string
	SwaggerUIPath      string
	OpenAPIPath        string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Bind:               getenv("AGORA_BIND", DefaultBind),
		DBDriver:           getenv("AGORA_DB_DRIVER", DefaultDBDriver),
		DBDSN:              os.Getenv("AGORA_DB_DSN"),
		MaxBodyBytes:       getInt64("AGORA_MAX_BODY_BYTES", DefaultMaxBodyBytes),
		CORSAllowedOrigins: splitAndTrim(os.Getenv("AGORA_CORS_ALLOWED_ORIGINS")),
		Seed:               getBool("AGORA_SEED", false),
		SeedFile:           os.Getenv("AGORA_SEED_FILE"),
		SwaggerUIPath:      "/swagger",
		OpenAPIPath:        "/openapi.yaml",
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("AGORA_DB_DSN is required")
	}

	switch cfg.DBDriver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("invalid AGORA_DB_DRIVER: %s", cfg.DBDriver)
	}

	level, err := parseLevel(os.Getenv("AGORA_LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

func parseLevel(v string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(v) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return 0, fmt.Errorf("invalid AGORA_LOG_LEVEL: %s", v)
	}
	return level, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(strings.TrimSpace(v))
		return v == "1" || v == "true" || v == "yes" || v == "y"
	}
	return def
}

func splitAndTrim(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
