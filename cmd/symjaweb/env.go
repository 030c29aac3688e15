package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/bongani-m/symja-web/internal/assets"
	"github.com/bongani-m/symja-web/internal/snapshot"
)

// pdfConverter prints an HTML page to PDF.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Environ     map[string]string // nil reads the process environment
	AssetLoader assets.AssetLoader
	NewPDF      func(timeout time.Duration) pdfConverter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		AssetLoader: assets.NewEmbeddedLoader(),
		NewPDF: func(timeout time.Duration) pdfConverter {
			return snapshot.New(timeout)
		},
	}
}
