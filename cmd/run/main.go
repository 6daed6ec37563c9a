package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akazakov/polls-api/internal/app"
	"github.com/akazakov/polls-api/internal/config"
	"github.com/akazakov/polls-api/internal/lib/logger/sl"
	"github.com/akazakov/polls-api/utils"
	"github.com/joho/godotenv"

	_ "github.com/akazakov/polls-api/docs"
)

// @title Polls API
// @version 1.0
// @description Polls and votes with token-based authentication.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load(config.Path())

	log := utils.New(cfg.Env)

	log.Info("starting polls service", slog.String("env", cfg.Env), slog.Int("port", cfg.HTTP.Port))

	application := app.NewApp(log, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := application.HTTPServer.Run(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("HTTP server closed gracefully")
			} else {
				log.Error("failed to run HTTP server", sl.Err(err))
				os.Exit(1)
			}
		}
	}()

	<-ctx.Done()

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := application.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop application", sl.Err(err))
	}
}
