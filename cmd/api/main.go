package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/andymccutcheon/return-to-print/internal/api"
	"github.com/andymccutcheon/return-to-print/internal/cache"
	"github.com/andymccutcheon/return-to-print/internal/config"
	"github.com/andymccutcheon/return-to-print/internal/repo"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("pgx", cfg.Database.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	messages := repo.NewPostgresMessageRepo(db)
	if err := messages.EnsureSchema(pingCtx); err != nil {
		log.Fatal(err)
	}

	var recent cache.RecentCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		recent = cache.NewRedisCache(rdb, cfg.Redis.TTL)
	}

	handler := api.NewHandler(messages, recent)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      loggingMiddleware(api.Router(handler)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("queue api listening", "addr", cfg.Server.Address, "redis", cfg.Redis.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
