package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/configs"
	"github.com/n4mp3un9/car-rental-sub001/controllers"
	"github.com/n4mp3un9/car-rental-sub001/middlewares"
	"github.com/n4mp3un9/car-rental-sub001/routes"
	"github.com/n4mp3un9/car-rental-sub001/ws"
)

func main() {
	cfg := configs.LoadConfig()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *configs.Config, log *slog.Logger) error {
	// DB
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		return err
	}
	if err := configs.SetupDatabase(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := configs.SeedShop(db, cfg); err != nil {
		return fmt.Errorf("seed shop: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Live notifications
	hub := ws.NewHub(log, cfg.CORSOrigins)
	go hub.Run(ctx)

	// HTTP
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := controllers.RegisterValidators(); err != nil {
		return err
	}
	r := gin.New()
	r.MaxMultipartMemory = 16 << 20
	r.Use(gin.Recovery(), middlewares.RequestLogger(log), middlewares.CORSMiddleware(cfg.CORSOrigins))
	routes.RegisterRoutes(r, db, cfg, hub)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", srv.Addr, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
