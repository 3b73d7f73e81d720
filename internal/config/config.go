package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv          = "dev"
	defaultDBPath          = "./dev.db"
	defaultPort            = "8080"
	defaultMigrationsDir   = "migrations"
	defaultResultCacheSize = 256
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv          string
	DBPath          string
	Port            string
	CatalogPath     string
	MigrationsDir   string
	ResultCacheSize int
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production should use real env injection.
	if err := loadDotEnv(".env"); err != nil {
		log.Printf("warning: load .env: %v", err)
	}

	cfg := Config{
		AppEnv:          strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		DBPath:          os.Getenv("DB_PATH"),
		Port:            os.Getenv("PORT"),
		CatalogPath:     strings.TrimSpace(os.Getenv("CATALOG_PATH")),
		MigrationsDir:   os.Getenv("MIGRATIONS_DIR"),
		ResultCacheSize: defaultResultCacheSize,
	}

	if cfg.AppEnv == "" {
		cfg.AppEnv = defaultAppEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = defaultMigrationsDir
	}

	if raw := strings.TrimSpace(os.Getenv("RESULT_CACHE_SIZE")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			log.Printf("warning: RESULT_CACHE_SIZE=%q is not a positive integer, using %d", raw, defaultResultCacheSize)
		} else {
			cfg.ResultCacheSize = size
		}
	}

	if cfg.CatalogPath == "" {
		log.Print("warning: CATALOG_PATH is not set, using built-in catalog")
	}

	return cfg
}

// IsDev reports whether the app runs in a local development environment.
func (c Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development" || c.AppEnv == "local"
}

// loadDotEnv loads KEY=VALUE pairs from path. A missing file is not an error
// and existing environment variables are never overwritten.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
