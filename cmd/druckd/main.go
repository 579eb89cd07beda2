package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/3ddruckrorbas/Druck/config"
	"github.com/3ddruckrorbas/Druck/internal/api"
	"github.com/3ddruckrorbas/Druck/internal/auth"
	"github.com/3ddruckrorbas/Druck/internal/fstore"
	"github.com/3ddruckrorbas/Druck/internal/notify"
	"github.com/3ddruckrorbas/Druck/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "druckd ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	files := fstore.New(cfg.Data.Dir)
	orders := store.NewOrderStore(files)
	filaments := store.NewFilamentStore(files)
	creds := store.NewCredentialStore(files, cfg.Auth.DefaultPassword)
	logger.Printf("data store initialized in %s", cfg.Data.Dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := notify.NewWorkerPool(cfg.WorkerPool.Size, notify.NewWebPushSender(&cfg.Push))
	pool.Start(ctx)
	if cfg.Push.Admin.Endpoint == "" {
		logger.Println("warning: no admin push subscription configured; notifications will fail and be dropped")
	}

	codes := auth.NewCodeTable(cfg.Auth.CodeTTL)
	authSvc := auth.NewService(creds, codes, auth.NewAllowlist(cfg.Auth.AllowlistPrefixes), pool)

	handler := api.NewHandler(orders, filaments, creds, authSvc, pool)
	router := api.NewRouter(handler, api.RouterOptions{
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
		StaticDir:       cfg.Server.StaticDir,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
