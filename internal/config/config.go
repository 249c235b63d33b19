package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	envListenAddr      = "ZZEEP_LISTEN_ADDR"
	envPresenceBackend = "ZZEEP_PRESENCE_BACKEND"
	envRedisAddr       = "ZZEEP_REDIS_ADDR"
	envRedisPassword   = "ZZEEP_REDIS_PASSWORD"
	envAllowedOrigins  = "ZZEEP_ALLOWED_ORIGINS"
	envLogLevel        = "ZZEEP_LOG_LEVEL"
)

// Presence backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

const (
	DefaultListenAddr = ":4000"
	DefaultRedisAddr  = "localhost:6379"
)

type Config struct {
	ListenAddr      string
	PresenceBackend string
	RedisAddr       string
	RedisPassword   string
	// AllowedOrigins restricts WebSocket upgrades by Origin header.
	// Empty means allow all.
	AllowedOrigins []string
	LogLevel       string
}

// FromEnv builds a Config from environment variables, applying defaults for
// anything unset.
func FromEnv() (Config, error) {
	cfg := Config{
		ListenAddr:      envOr(envListenAddr, DefaultListenAddr),
		PresenceBackend: envOr(envPresenceBackend, BackendMemory),
		RedisAddr:       envOr(envRedisAddr, DefaultRedisAddr),
		RedisPassword:   os.Getenv(envRedisPassword),
		AllowedOrigins:  splitOrigins(os.Getenv(envAllowedOrigins)),
		LogLevel:        envOr(envLogLevel, "info"),
	}

	switch cfg.PresenceBackend {
	case BackendMemory, BackendRedis:
	default:
		return Config{}, fmt.Errorf("config: unknown presence backend %q", cfg.PresenceBackend)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
