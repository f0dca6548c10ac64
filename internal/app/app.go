package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amaumene/jellysook/internal/clients"
	"github.com/amaumene/jellysook/internal/config"
	"github.com/amaumene/jellysook/internal/handler"
	"github.com/amaumene/jellysook/internal/service"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	cfg    *config.Config
	server *http.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	app := &App{cfg: cfg}
	app.wireServices()

	return app, nil
}

func (a *App) wireServices() {
	provider := clients.NewTMDBClient(a.cfg.TMDBBaseURL, a.cfg.TMDBAPIKey, a.cfg.HTTPTimeout)
	posters := clients.NewPosterDownloader(a.cfg.PosterTimeout)
	messenger := clients.NewWhatsAppClient(a.cfg.WhatsAppURL, a.cfg.WhatsAppUser, a.cfg.WhatsAppPass, a.cfg.HTTPTimeout)

	notificationSvc := service.NewNotificationService(a.cfg, provider, posters, messenger)
	httpHandler := handler.NewHTTPHandler(notificationSvc)

	router := mux.NewRouter()
	httpHandler.RegisterRoutes(router)

	a.server = &http.Server{
		Addr:    a.cfg.ServerPort,
		Handler: router,
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.startServer()

	return a.waitForShutdown(ctx, cancel)
}

func (a *App) startServer() {
	log.WithFields(log.Fields{
		"component": "server",
		"address":   a.cfg.ServerPort,
	}).Info("http server listening")

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithFields(log.Fields{
			"component": "server",
			"error":     err,
		}).Fatal("http server failed to start")
	}
}

func (a *App) waitForShutdown(ctx context.Context, cancel context.CancelFunc) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		log.WithField("reason", "context_cancelled").Info("initiating graceful shutdown")
	case sig := <-sigChan:
		log.WithField("signal", sig).Info("received shutdown signal")
	}

	cancel()
	return a.shutdown()
}

func (a *App) shutdown() error {
	log.Info("graceful shutdown started")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		log.WithFields(log.Fields{
			"component": "server",
			"error":     err,
		}).Error("http server shutdown failed")
		return err
	}

	log.Info("graceful shutdown completed")
	return nil
}
