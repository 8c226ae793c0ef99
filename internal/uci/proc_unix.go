//go:build unix

package uci

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// canExecute asks the kernel whether the real user may execute path.
func canExecute(path string, _ os.FileInfo) bool {
	return unix.Access(path, unix.X_OK) == nil
}

// configureSysProcAttr puts the engine in its own process group so teardown
// reaches anything a wrapper script forked.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// signalGroup sends sig to the engine's process group, falling back to the
// process alone if the group is gone.
func signalGroup(pid int, sig syscall.Signal) error {
	if err := unix.Kill(-pid, sig); err == nil {
		return nil
	}
	return unix.Kill(pid, sig)
}
