package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/config"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/handler"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/logger"
	repoinfra "github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
	pgrepo "github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository/postgres"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/ws"
)

func main() {
	// Load application config
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	appLogger.Info().Msg("✅ Logger initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectPgx, err := repoinfra.New(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatalf("❌ Postgres connection failed: %v", err)
	}
	defer connectPgx.Close()

	pool := connectPgx.Pool()
	matches := pgrepo.NewMatchRepository(pool)
	pinger := pgrepo.NewPinger(pool)

	hub := ws.NewHub(appLogger)
	go hub.Run(ctx)

	matchSvc := service.NewMatchService(matches, appLogger)
	scoringSvc := service.NewScoringService(matches, hub, appLogger)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	handler.Register(r, pinger, matchSvc, scoringSvc, hub)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		appLogger.Info().Str("addr", srv.Addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	appLogger.Info().Msg("✅ Service stopped")
}
