package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectin/internal/config"
	"connectin/internal/middleware"
	"connectin/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		middleware.Logger.Error("failed to initialize server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	engine := html.New(cfg.ViewsDir, ".html")

	app := fiber.New(fiber.Config{
		AppName: "ConnectIn",
		Views:   engine,
		// Multipart posts carry an image of up to 2MB plus form overhead.
		BodyLimit: 5 * 1024 * 1024,
	})

	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			middleware.Logger.Error("server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()
	middleware.Logger.Info("server started", slog.String("port", cfg.Port), slog.String("env", cfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	middleware.Logger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		middleware.Logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}
