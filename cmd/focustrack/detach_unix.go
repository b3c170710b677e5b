//go:build !windows

package main

import "syscall"

// detachAttr detaches the daemon child from the controlling terminal.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
