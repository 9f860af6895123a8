//go:build !windows

package pingsweep

import "golang.org/x/sys/unix"

// DefaultPrivileged reports whether raw ICMP sockets should be used by default
func DefaultPrivileged() bool {
	return unix.Geteuid() == 0
}
