//go:build windows

package launcher

import (
	"os/exec"
	"time"
)

func configureProcess(cmd *exec.Cmd) {}

// terminateProcess kills the engine. Windows has no SIGTERM, so grace is unused.
func terminateProcess(cmd *exec.Cmd, _ time.Duration) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}
