//go:build windows

package pingsweep

import "golang.org/x/sys/windows"

// DefaultPrivileged reports whether raw ICMP sockets should be used by default.
// Windows has no datagram ICMP sockets, so an elevated token is required.
func DefaultPrivileged() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
