package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"toolsail-backend/pkg/container"
)

// startServices kiểm tra Redis + database rồi mở health endpoint
func startServices(c *container.Container) error {
	client := redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	defer client.Close()

	checks := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"redis", func(ctx context.Context) error { return client.Ping(ctx).Err() }},
		{"database", c.DB.Ping},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s check failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("Startup check passed")
	}

	go startHealthCheckServer(c.Config.Worker.HealthAddr)
	return nil
}

func startHealthCheckServer(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"UP","service":"toolsail-worker"}`))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"READY"}`))
	})

	log.Info().Str("addr", addr).Msg("Worker health server starting")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Worker health server failed")
	}
}
