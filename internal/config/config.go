package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bongani-m/symja-web/internal/fileutil"
	"github.com/bongani-m/symja-web/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Defaults.
const (
	DefaultLine           = 21
	DefaultMaxOutputSize  = 32767
	DefaultPreviewStyle   = "github"
	DefaultPreviewTimeout = 30 * time.Second
)

// appDir names the directory under the user config dir searched for configs.
const appDir = "symja-web"

// Config holds settings shared by the CLI commands.
type Config struct {
	Envelope EnvelopeConfig `yaml:"envelope"`
	Engine   EngineConfig   `yaml:"engine"`
	Preview  PreviewConfig  `yaml:"preview"`
}

// EnvelopeConfig controls the result envelope.
type EnvelopeConfig struct {
	Line int `yaml:"line"` // reported for successful results
}

// EngineConfig controls the static MathML engine.
type EngineConfig struct {
	MaxOutputSize int `yaml:"maxOutputSize"` // bytes of rendered MathML
}

// PreviewConfig controls HTML and PDF previews.
type PreviewConfig struct {
	Style   string `yaml:"style"`   // chroma style for the payload listing
	Timeout string `yaml:"timeout"` // PDF rendering timeout, e.g. "45s"
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Envelope: EnvelopeConfig{Line: DefaultLine},
		Engine:   EngineConfig{MaxOutputSize: DefaultMaxOutputSize},
		Preview: PreviewConfig{
			Style:   DefaultPreviewStyle,
			Timeout: DefaultPreviewTimeout.String(),
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Envelope.Line < 0 {
		return fmt.Errorf("%w: envelope.line must not be negative, got %d", ErrInvalidValue, c.Envelope.Line)
	}
	if c.Engine.MaxOutputSize <= 0 {
		return fmt.Errorf("%w: engine.maxOutputSize must be positive, got %d", ErrInvalidValue, c.Engine.MaxOutputSize)
	}
	if c.Preview.Timeout != "" {
		d, err := time.ParseDuration(c.Preview.Timeout)
		if err != nil {
			return fmt.Errorf("%w: preview.timeout: %v", ErrInvalidValue, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: preview.timeout must be positive, got %s", ErrInvalidValue, d)
		}
	}
	return nil
}

// PreviewTimeout returns the parsed preview timeout, or the default when
// unset or invalid.
func (c *Config) PreviewTimeout() time.Duration {
	d, err := time.ParseDuration(c.Preview.Timeout)
	if err != nil || d <= 0 {
		return DefaultPreviewTimeout
	}
	return d
}

// LoadConfig loads configuration from a file path or config name.
// Names are searched in the working directory, then ~/.config/symja-web/.
// Fields absent from the file keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := yamlutil.Decode(f, cfg, true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, appDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
