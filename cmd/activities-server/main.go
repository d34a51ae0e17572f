package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/celerix-dev/mergington-activities/internal/config"
	"github.com/celerix-dev/mergington-activities/internal/engine"
	"github.com/celerix-dev/mergington-activities/internal/logger"
	"github.com/celerix-dev/mergington-activities/internal/metrics"
	"github.com/celerix-dev/mergington-activities/internal/server"
	"github.com/celerix-dev/mergington-activities/pkg/schema"
)

//go:embed all:static
var frontendStatic embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	// 1. Load the seed catalog
	seed, err := loadSeed(cfg.SeedFile)
	if err != nil {
		log.Fatal("failed to load seed", zap.String("path", cfg.SeedFile), zap.Error(err))
	}

	store := engine.NewMemStore(seed)
	for name, a := range seed {
		metrics.SetParticipants(name, len(a.Participants))
	}
	log.Info("activity store ready", zap.Int("activities", len(seed)))

	// 2. Front-end bundle
	staticFS, err := fs.Sub(frontendStatic, "static")
	if err != nil {
		log.Fatal("failed to open embedded front-end", zap.Error(err))
	}

	// 3. HTTP router
	router := server.NewRouter(server.Options{
		Store:          store,
		Static:         staticFS,
		Logger:         log,
		CORSOrigin:     cfg.CORSOrigin,
		MetricsEnabled: cfg.MetricsEnabled,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Listen(cfg.HTTPAddress)
	}()

	// 4. Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("http server failed", zap.Error(err))
		}
	case sig := <-sigChan:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := router.Stop(ctx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
		}
		<-errCh
	}
	log.Info("activities server stopped")
}

func loadSeed(path string) (map[string]schema.Activity, error) {
	if path == "" {
		return engine.DefaultSeed(), nil
	}
	return engine.LoadSeedFile(path)
}
