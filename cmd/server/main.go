package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/sumit221292/zzeep/internal/adapter/driven/presence/memory"
	"github.com/sumit221292/zzeep/internal/adapter/driven/presence/redis"
	handler "github.com/sumit221292/zzeep/internal/adapter/driving/http"
	"github.com/sumit221292/zzeep/internal/config"
	"github.com/sumit221292/zzeep/internal/core/port"
	"github.com/sumit221292/zzeep/internal/core/service"
)

func main() {
	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Caller().Logger()
	zlog.Logger = l

	cfg, err := config.FromEnv()
	if err != nil {
		l.Fatal().Err(err).Msg("Invalid configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	var store port.PresenceStore
	switch cfg.PresenceBackend {
	case config.BackendRedis:
		rs := redis.NewStore(cfg.RedisAddr, cfg.RedisPassword)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rs.Ping(ctx); err != nil {
			// Presence is best effort; keep serving signals without it.
			l.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unreachable")
		} else {
			l.Info().Str("addr", cfg.RedisAddr).Msg("Redis connected")
		}
		cancel()
		store = rs
	default:
		store = memory.NewStore()
	}
	defer store.Close()

	registry := service.NewRegistry()
	presence := service.NewPublisher(store, registry)
	coordinator := service.NewCoordinator(registry, presence)

	h := handler.NewHandler(coordinator, presence, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: h.NewRouter(),
	}

	go func() {
		l.Info().Str("addr", cfg.ListenAddr).Str("presence", cfg.PresenceBackend).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	l.Info().Msg("Server exited")
}
