// Package config reads process configuration from the environment, with
// fallbacks for local development. cmd/dbtool and cmd/server both load a
// .env file (github.com/joho/godotenv) before any Get call.
package config

import (
	"log"
	"os"
	"strconv"
)

// Get returns the value of the named environment variable, or fallback if
// it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt is Get parsed as an integer. An unparseable value logs a warning
// and falls back, rather than failing startup over a typo'd env file.
func GetInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using fallback %d", key, raw, fallback)
		return fallback
	}
	return v
}
