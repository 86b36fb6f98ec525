package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds the process configuration. It is built once in main and
// passed down explicitly; there is no package-level instance.
type Config struct {
	ListenAddr     string
	APIVersion     string
	JWTSecret      string
	AllowedOrigins []string
	Storage        string

	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string
}

// Load reads configuration from a .env file (when present) and the
// environment. A missing JWT secret is a hard error so that a misconfigured
// process fails at startup instead of on the first authenticated request.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("API_VERSION", "v1")
	v.SetDefault("STORAGE", StoragePostgres)
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")

	v.AutomaticEnv()

	// The .env file is optional; the environment alone is enough.
	_ = v.ReadInConfig()

	cfg := &Config{
		ListenAddr:     v.GetString("LISTEN_ADDR"),
		APIVersion:     v.GetString("API_VERSION"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		AllowedOrigins: splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		Storage:        v.GetString("STORAGE"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPass:         v.GetString("DB_PASS"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, errors.New("STORAGE must be postgres or memory")
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
