package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"jobscraper/internal/app"
	"jobscraper/internal/config"
	"jobscraper/internal/logger"
	"jobscraper/internal/scheduler"
	"jobscraper/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Default.Fatal().Err(err).Msg("❌ Failed to load config")
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.For("main")
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(ctx, cfg)
	defer a.Close()

	board := server.NewStatusBoard()
	runner := server.NewRunner(a.Service, board, server.DefaultHeartbeat)
	srv := server.New(runner, board, strconv.Itoa(cfg.Port))

	if cfg.Schedule != "" {
		sched := scheduler.New(cfg.Schedule, func(ctx context.Context) error {
			_, err := runner.Run(ctx, a.DefaultRequest())
			return err
		})
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to start scheduler")
		}
		defer sched.Stop()
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msgf("🚀 Starting Job Scraper API on port %d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown")
	}
}
