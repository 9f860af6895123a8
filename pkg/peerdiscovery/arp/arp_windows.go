//go:build windows

package arp

import (
	"context"
	"fmt"
	"os/exec"
)

// readLocalARPTable reads the local ARP table on Windows using 'arp -a' command
func readLocalARPTable(ctx context.Context) ([]Entry, error) {
	output, err := exec.CommandContext(ctx, "arp", "-a").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute arp -a: %w", err)
	}
	return parseWindowsARP(output)
}
