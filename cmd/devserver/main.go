package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskdesk/client-go/internal/devserver"
	"github.com/taskdesk/client-go/internal/devserver/store"
	"github.com/taskdesk/client-go/internal/infrastructure/config"
	"github.com/taskdesk/client-go/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	st := store.New()
	e := devserver.NewRouter(st, cfg.Dev, log)

	go func() {
		log.Info().Str("port", cfg.Dev.Port).Msg("devserver listening")
		if err := e.Start(":" + cfg.Dev.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("devserver failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
