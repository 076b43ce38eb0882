package utils

import (
	"os"
	"strconv"

	"github.com/openbims/bims-backend/internal/logger"
)

func GetEnv(key, fallback string, log *logger.Logger) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if log != nil {
		log.Debug("Env var not set, using fallback", "key", key, "fallback", fallback)
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int, log *logger.Logger) int {
	val := os.Getenv(key)
	if val == "" {
		if log != nil {
			log.Debug("Env var not set, using fallback", "key", key, "fallback", fallback)
		}
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		if log != nil {
			log.Warn("Env var is not an integer, using fallback", "key", key, "value", val)
		}
		return fallback
	}
	return n
}
