// Package hints provides actionable follow-ups for CLI errors.
// Hints are formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/bongani-m/symja-web/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the preview timeout.
func ForTimeout() string {
	return format("use --timeout or SYMJAWEB_TIMEOUT for slow machines")
}

// ForConfigNotFound suggests --config and the first user config path among
// the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "symja-web") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForPayload returns a hint for unreadable preview payloads.
func ForPayload() string {
	return format("preview expects the JSON printed by the error, syntax, script, show or result commands")
}

// ForMaxOutputSize returns a hint for results over the engine limit.
func ForMaxOutputSize() string {
	return format("raise engine.maxOutputSize in the config or SYMJAWEB_MAX_OUTPUT_SIZE")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
