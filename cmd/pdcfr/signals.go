package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

// signalContext is cancelled on the first interrupt or SIGTERM. A second
// signal exits immediately.
func signalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
			return
		}
		select {
		case <-sigChan:
			logger.Warn("Forced exit")
			os.Exit(1)
		case <-parent.Done():
		}
	}()

	return ctx, cancel
}
