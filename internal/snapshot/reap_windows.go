//go:build windows

package snapshot

import (
	"os/exec"
	"strconv"
)

// reapBrowser kills the browser process tree with taskkill.
func reapBrowser(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
}
