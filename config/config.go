// Package config builds the process configuration once at startup.
// Components receive the values they need through their
// constructors; nothing reads the environment after FromEnv returns.
package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	// InputDir is the watched root; only its direct children are
	// classified as extractions.
	InputDir string

	// StoreDir is the content-addressable file store root.
	StoreDir string

	// RedisAddr is the host:port of the tracking Redis.
	RedisAddr string

	// Listen is the HTTP facade's listen address.
	Listen string
}

// FromEnv loads .env if present, then reads the AMBRY_* variables,
// falling back to defaults.
func FromEnv() (cfg Config) {
	err := godotenv.Load()
	if err != nil {
		log.Debugf("no .env loaded: %v", err)
	}

	cfg.InputDir = getenv("AMBRY_INPUT_DIR", "/mnt/data")
	cfg.StoreDir = getenv("AMBRY_STORE_DIR", "/var/lib/ambry/store")
	cfg.Listen = getenv("AMBRY_LISTEN", ":8080")

	host := getenv("AMBRY_REDIS_HOST", "redis")
	port := getenv("AMBRY_REDIS_PORT", "6379")
	cfg.RedisAddr = getenv("AMBRY_REDIS", host+":"+port)
	return
}

func getenv(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
