package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// setupSignalHandler derives a context from parent that is cancelled on SIGTERM or
// SIGINT. callback, when set, runs with the received signal before cancellation.
// The returned cancel stops signal delivery and must be called.
func setupSignalHandler(parent context.Context, callback func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-sigChan:
			if callback != nil {
				callback(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(sigChan)
			cancel()
		})
	}
}
