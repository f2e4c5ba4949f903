package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"kidnews/internal/api"
	"kidnews/internal/config"
	"kidnews/internal/logging"
	"kidnews/internal/publisher"
	"kidnews/internal/rewriter"
	"kidnews/internal/service"
	"kidnews/internal/storage/provider"
	"kidnews/internal/worker"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := logging.New("info")
	if err := run(*configPath, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger = logging.New(cfg.LogLevel)

	// Provider selection falls back to the in-memory store on its own; a
	// broken database config never prevents startup.
	store := provider.Open(cfg.Database, logger)
	defer store.Close()

	var rw service.Rewriter
	if cfg.Rewriter.Endpoint != "" && cfg.Rewriter.APIKey != "" {
		rw = rewriter.NewOpenAI(cfg.Rewriter)
	} else {
		logger.Warn("rewriter api not configured, articles will use the fallback simplifier")
		rw = rewriter.NewFallback()
	}

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rmq, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, article events will not be published", "error", err)
		} else {
			defer rmq.Close()
			pub = rmq
		}
	}

	articles := service.NewArticleService(store, rw, rewriter.NewFallback(), pub, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewSweeper(store, cfg.Invitations.SweepInterval, logger)
	go func() {
		if err := sweeper.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("sweeper stopped", "error", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	srv := api.NewServer(store, articles, cfg.Invitations.TTL, logger)
	srv.Register(e)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "port", cfg.Server.Port, "provider", store.Name())
	if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
