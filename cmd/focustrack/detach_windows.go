//go:build windows

package main

import "syscall"

const createNewProcessGroup = 0x00000200

// detachAttr starts the daemon child in its own process group so console
// signals do not reach it.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: createNewProcessGroup}
}
