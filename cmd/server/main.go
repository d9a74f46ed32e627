package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/container"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := container.New()
	log := config.Logger

	if config.App.SchedulerEnabled {
		if err := c.Scheduler.Start(config.App.SchedulerSpec); err != nil {
			log.WithError(err).Fatal("Failed to start scheduler")
		}
	}

	srv := &http.Server{
		Addr:              ":" + config.App.HTTPPort,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	if config.App.SchedulerEnabled {
		c.Scheduler.Stop(shutdownCtx)
	}
}
