//go:build !windows

package snapshot

import "syscall"

// reapBrowser sends SIGKILL to the browser's process group so renderer and
// GPU helpers do not outlive the CLI. Errors are ignored because the
// launcher kills the main process afterwards.
func reapBrowser(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
