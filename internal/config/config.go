package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DataPath   string
	DataFormat string
	DBPath     string
	OutputDir  string

	HTTPAddr string

	TopNationalities int

	WatchIntervalSec int
	WatchAutoExport  bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DataPath:   getEnv("DATA_PATH", filepath.Join(cwd, "data", "astronauts.csv")),
		DataFormat: getEnv("DATA_FORMAT", "csv"),
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir:  getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		TopNationalities: getEnvInt("TOP_NATIONALITIES", 10),

		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 30),
		WatchAutoExport:  getEnvBool("WATCH_AUTO_EXPORT", true),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
