package config

import (
	"log"
	"os"
	"strconv"
)

// getInt32Env reads a pool-sizing knob; pgxpool wants int32.
func getInt32Env(key string, fallback int32) int32 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	i, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, fallback)
		return fallback
	}
	return int32(i)
}
