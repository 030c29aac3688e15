package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/bongani-m/symja-web/internal/config"
)

const envPrefix = "SYMJAWEB_"

// envConfig holds overrides read from SYMJAWEB_* variables.
type envConfig struct {
	ConfigPath    string        `env:"SYMJAWEB_CONFIG"`
	Line          *int          `env:"SYMJAWEB_LINE"`
	MaxOutputSize int           `env:"SYMJAWEB_MAX_OUTPUT_SIZE"`
	PreviewStyle  string        `env:"SYMJAWEB_PREVIEW_STYLE"`
	Timeout       time.Duration `env:"SYMJAWEB_TIMEOUT"`
}

// knownEnvVars lists the variables envConfig reads, for typo warnings.
var knownEnvVars = map[string]bool{
	"SYMJAWEB_CONFIG":          true,
	"SYMJAWEB_LINE":            true,
	"SYMJAWEB_MAX_OUTPUT_SIZE": true,
	"SYMJAWEB_PREVIEW_STYLE":   true,
	"SYMJAWEB_TIMEOUT":         true,
}

// loadEnvConfig parses environ, or the process environment when nil.
func loadEnvConfig(environ map[string]string) (*envConfig, error) {
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}
	cfg := &envConfig{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("%w: parse env: %v", ErrUsage, err)
	}
	return cfg, nil
}

// apply overrides cfg with every variable that was set.
func (e *envConfig) apply(cfg *config.Config) {
	if e.Line != nil {
		cfg.Envelope.Line = *e.Line
	}
	if e.MaxOutputSize > 0 {
		cfg.Engine.MaxOutputSize = e.MaxOutputSize
	}
	if e.PreviewStyle != "" {
		cfg.Preview.Style = e.PreviewStyle
	}
	if e.Timeout > 0 {
		cfg.Preview.Timeout = e.Timeout.String()
	}
}

// warnUnknownEnvVars reports SYMJAWEB_* variables nobody reads.
func warnUnknownEnvVars(w io.Writer, environ map[string]string) {
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}
	var unknown []string
	for k := range environ {
		if strings.HasPrefix(k, envPrefix) && !knownEnvVars[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s\n", k)
	}
}
