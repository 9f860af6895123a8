package arp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/pingsweep"
)

// Entry is a resolved IPv4 neighbour from the local ARP table
type Entry struct {
	IP  string
	MAC net.HardwareAddr
}

// ReadTable returns the local ARP table keyed by IPv4 address
func ReadTable(ctx context.Context) (map[string]net.HardwareAddr, error) {
	entries, err := readLocalARPTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read local ARP table: %w", err)
	}

	table := make(map[string]net.HardwareAddr, len(entries))
	for _, entry := range entries {
		table[entry.IP] = entry.MAC
	}
	return table, nil
}

// Annotate sets the MAC of every reachable result found in table.
// A sweep fills the ARP table for on-link hosts, so the table should be
// read after the sweep.
func Annotate(results []pingsweep.Result, table map[string]net.HardwareAddr) int {
	annotated := 0
	for i := range results {
		if !results[i].Reachable {
			continue
		}
		if mac, ok := table[results[i].IP]; ok {
			results[i].MAC = mac.String()
			annotated++
		}
	}
	return annotated
}

func newEntry(ipStr, macStr string) (Entry, bool) {
	ip := net.ParseIP(ipStr)
	if ip == nil || ip.To4() == nil {
		return Entry{}, false
	}
	mac, err := net.ParseMAC(macStr)
	if err != nil {
		return Entry{}, false
	}
	if bytes.Equal(mac, net.HardwareAddr{0, 0, 0, 0, 0, 0}) || bytes.Equal(mac, net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}) {
		return Entry{}, false
	}
	return Entry{IP: ip.To4().String(), MAC: mac}, true
}

// parseLinuxARP parses /proc/net/arp
func parseLinuxARP(data []byte) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))

	// Skip header line
	if !scanner.Scan() {
		return entries, scanner.Err()
	}

	for scanner.Scan() {
		// Format: IP address HW type Flags HW address Mask Device
		fields := strings.Fields(scanner.Text())
		if len(fields) < 6 {
			continue
		}
		if entry, ok := newEntry(fields[0], fields[3]); ok {
			entries = append(entries, entry)
		}
	}
	return entries, scanner.Err()
}

// parseDarwinARP parses `arp -an` output such as
// "? (192.168.1.1) at aa:bb:cc:dd:ee:ff on en0 ifscope [ethernet]"
func parseDarwinARP(output []byte) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()

		_, rest, found := strings.Cut(line, "(")
		if !found {
			continue
		}
		ipStr, rest, found := strings.Cut(rest, ")")
		if !found {
			continue
		}
		_, rest, found = strings.Cut(rest, " at ")
		if !found {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		if entry, ok := newEntry(ipStr, padMAC(fields[0])); ok {
			entries = append(entries, entry)
		}
	}
	return entries, scanner.Err()
}

// padMAC expands the single digit groups BSD arp prints ("0:1b:2:..")
func padMAC(mac string) string {
	groups := strings.Split(mac, ":")
	for i, group := range groups {
		if len(group) == 1 {
			groups[i] = "0" + group
		}
	}
	return strings.Join(groups, ":")
}

// parseWindowsARP parses `arp -a` output. Each interface section lists
// "Internet Address  Physical Address  Type" rows with dash separated MACs.
func parseWindowsARP(output []byte) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(output))

	inTable := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "Interface:"):
			inTable = false
			continue
		case strings.Contains(line, "Internet Address") && strings.Contains(line, "Physical Address"):
			inTable = true
			continue
		case !inTable:
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if entry, ok := newEntry(fields[0], strings.ReplaceAll(fields[1], "-", ":")); ok {
			entries = append(entries, entry)
		}
	}
	return entries, scanner.Err()
}
