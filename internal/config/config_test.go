package config

import (
	"reflect"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: unexpected error: %v", err)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Fatalf("ListenAddr: want %q, got %q", DefaultListenAddr, cfg.ListenAddr)
	}
	if cfg.PresenceBackend != BackendMemory {
		t.Fatalf("PresenceBackend: want memory, got %q", cfg.PresenceBackend)
	}
	if cfg.AllowedOrigins != nil {
		t.Fatalf("AllowedOrigins: want nil, got %v", cfg.AllowedOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(envListenAddr, "127.0.0.1:9000")
	t.Setenv(envPresenceBackend, BackendRedis)
	t.Setenv(envRedisAddr, "redis.internal:6380")
	t.Setenv(envAllowedOrigins, "http://localhost:3000, https://app.example.com ,")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: unexpected error: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Fatalf("ListenAddr: got %q", cfg.ListenAddr)
	}
	if cfg.PresenceBackend != BackendRedis {
		t.Fatalf("PresenceBackend: got %q", cfg.PresenceBackend)
	}
	if cfg.RedisAddr != "redis.internal:6380" {
		t.Fatalf("RedisAddr: got %q", cfg.RedisAddr)
	}
	want := []string{"http://localhost:3000", "https://app.example.com"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("AllowedOrigins: want %v, got %v", want, cfg.AllowedOrigins)
	}
}

func TestFromEnvRejectsUnknownBackend(t *testing.T) {
	t.Setenv(envPresenceBackend, "etcd")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("FromEnv: expected error for unknown backend")
	}
}
