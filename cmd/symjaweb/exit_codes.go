package main

import (
	"errors"
	"os"

	"github.com/bongani-m/symja-web/internal/config"
	"github.com/bongani-m/symja-web/internal/fileutil"
	"github.com/bongani-m/symja-web/internal/preview"
	"github.com/bongani-m/symja-web/internal/snapshot"
)

// Exit codes follow Unix conventions: 0=success, 1=general, 2=usage, and
// custom codes below 126.
const (
	ExitSuccess = 0 // Envelope written
	ExitGeneral = 1 // General/unexpected error, including render failures
	ExitUsage   = 2 // Invalid flags, config, or environment
	ExitIO      = 3 // File not found, permission denied, oversized input
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor maps an error to an exit code through errors.Is, so callers
// must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, snapshot.ErrBrowserConnect) ||
		errors.Is(err, snapshot.ErrPageCreate) ||
		errors.Is(err, snapshot.ErrPageLoad) ||
		errors.Is(err, snapshot.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrInputTooLarge) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, preview.ErrUnknownStyle) ||
		errors.Is(err, preview.ErrInvalidPayload) ||
		errors.Is(err, preview.ErrNoResults) {
		return ExitUsage
	}

	return ExitGeneral
}
