package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server until an interrupt or terminate signal is
// received, then shuts it down gracefully.
func (s *Server) Start() {
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()

	// Without the gate, sessions are still served from the cookie alone.
	if err := s.deps.Gate.Watch(watchCtx); err != nil {
		slog.Error("Failed to watch auth state changes", "error", err)
	}

	go func() {
		slog.Info("Starting server", "addr", s.Cfg.GetAppAddr(), "env", s.Cfg.GetAppEnv())
		if err := s.E.Start(s.Cfg.GetAppAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.E.Logger.Fatalf("shutting down the server: %v", err)
		}
	}()

	waitForShutdown()
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.E.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	stopWatch()
	if err := s.deps.Bus.Close(); err != nil {
		slog.Error("Failed to close event bus", "error", err)
	}
}

// waitForShutdown blocks until an interrupt or terminate signal is received.
func waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
}
