//go:build !windows

package commands

import "syscall"

// detachSysProcAttr returns the process attributes used to put the
// background daemon in its own session, detached from the terminal
// that launched it.
func detachSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
