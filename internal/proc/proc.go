// Package proc provides process existence checks.
package proc

import (
	"errors"
	"os"
	"syscall"
)

// Alive reports whether a process with the given PID is currently
// running. It sends signal 0, which checks existence without delivering
// anything to the target.
//
// EPERM means the process exists but belongs to another user (resolver
// files are typically written by root), so it counts as alive.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// On Unix, FindProcess always succeeds; the signal is the real check.
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
