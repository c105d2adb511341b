//go:build windows

package commands

import "syscall"

// detachSysProcAttr returns the process attributes used to put the
// background daemon in its own process group, detached from the
// console that launched it. Windows has no session/Setsid concept;
// CREATE_NEW_PROCESS_GROUP plus DETACHED_PROCESS is the equivalent.
func detachSysProcAttr() *syscall.SysProcAttr {
	const (
		createNewProcessGroup = 0x00000200
		detachedProcess       = 0x00000008
	)
	return &syscall.SysProcAttr{CreationFlags: createNewProcessGroup | detachedProcess}
}
