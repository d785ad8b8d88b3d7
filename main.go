package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/fintrackr/statement-extractor/internal/api"
	"github.com/fintrackr/statement-extractor/internal/config"
	"github.com/fintrackr/statement-extractor/internal/extractor"
	"github.com/fintrackr/statement-extractor/internal/logger"
	"github.com/fintrackr/statement-extractor/internal/statement"
	"github.com/fintrackr/statement-extractor/internal/store"
)

func main() {
	config.LoadConfig()
	logger.Init(config.Cfg.LogLevel)

	st, err := store.Open(config.Cfg.DatabasePath)
	if err != nil {
		logger.L.Error("failed to open statement store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	svc := &statement.Service{
		Extractor: &extractor.Extractor{
			PdftotextPath: config.Cfg.PdftotextPath,
			Timeout:       config.Cfg.ExtractTimeout,
		},
	}

	app := fiber.New(fiber.Config{
		BodyLimit: int(config.Cfg.MaxUploadSizeBytes),
	})

	h := &api.Handler{
		Service:        svc,
		Store:          st,
		MaxUploadBytes: config.Cfg.MaxUploadSizeBytes,
	}
	h.RegisterRoutes(app)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.L.Info("shutdown signal received")
		if err := app.Shutdown(); err != nil {
			logger.L.Error("shutdown failed", "error", err)
		}
	}()

	addr := ":" + config.Cfg.Port
	logger.L.Info("server listening", "addr", addr)
	if err := app.Listen(addr); err != nil {
		logger.L.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
