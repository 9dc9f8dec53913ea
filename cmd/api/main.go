// Package main provides the entry point for the book recommendation HTTP API.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookrec/internal/di"
	"github.com/listenupapp/bookrec/internal/di/providers"
	"github.com/listenupapp/bookrec/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Load config and catalog before accepting connections
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	server := do.MustInvoke[*providers.HTTPServerHandle](injector)
	server.Start()

	// Wait for shutdown signal or server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-quit:
		log.Info("Shutting down server gracefully...")
	case err := <-server.Err():
		if err != nil {
			exitCode = 1
		}
	}

	// The container shuts down the HTTP server, rate limiter and catalog in
	// reverse dependency order.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Server stopped")
	os.Exit(exitCode)
}
