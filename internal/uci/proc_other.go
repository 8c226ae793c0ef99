//go:build !unix

package uci

import (
	"os"
	"os/exec"
	"syscall"
)

func canExecute(_ string, fi os.FileInfo) bool {
	return fi.Mode().IsRegular()
}

func configureSysProcAttr(*exec.Cmd) {}

func signalGroup(pid int, _ syscall.Signal) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}
