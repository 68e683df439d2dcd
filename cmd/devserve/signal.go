package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// exit is replaced in tests.
var exit = os.Exit

// interruptContext returns a context cancelled by the first SIGINT or SIGTERM.
// A second signal ends the process at once instead of waiting for open
// connections to drain.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-done:
			return
		}
		select {
		case <-sigCh:
			exit(0)
		case <-done:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
			cancel()
		})
	}
}
