package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"serverless-adapter/internal/config"
	"serverless-adapter/internal/handlers"
)

// main runs the demo application on a local listener, without the Lambda
// adapter in front of it.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := config.ConfigureLogging(cfg.Log); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	if config.IsServerlessMode() {
		logrus.Warn("Lambda environment detected, use cmd/lambda for invocations")
	}

	app, err := handlers.NewApp(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to build application")
	}

	srv, ok := app.(*http.Server)
	if !ok {
		h, isHandler := app.(http.Handler)
		if !isHandler {
			logrus.Fatalf("Application %T cannot be served over HTTP", app)
		}
		srv = &http.Server{Handler: h}
	}
	srv.Addr = ":" + cfg.Port
	srv.ReadHeaderTimeout = 10 * time.Second

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"port":      cfg.Port,
		"framework": cfg.Adapter.Framework,
	}).Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}
