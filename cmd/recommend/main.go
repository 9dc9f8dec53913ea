// Package main runs the interactive book recommendation console.
//
// Usage:
//
//	go run ./cmd/recommend -catalog testdata/books.owl
//	CATALOG_BACKEND=sqlite DATA_PATH=~/.bookrec go run ./cmd/recommend
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookrec/internal/console"
	"github.com/listenupapp/bookrec/internal/di"
	"github.com/listenupapp/bookrec/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	session := do.MustInvoke[*console.Session](injector)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// A blocked stdin read does not observe ctx, so the session runs aside.
	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	exitCode := 0
	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout, "\n"+console.Farewell)
	case err := <-done:
		if err != nil {
			log.Error("Console session failed", "error", err)
			exitCode = 1
		}
	}
	stop()

	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}
	os.Exit(exitCode)
}
