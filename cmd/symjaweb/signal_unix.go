//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// interruptContext is canceled on SIGINT or SIGTERM so a preview in
// progress stops and the browser is closed.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
