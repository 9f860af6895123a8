package prescan

import (
	"fmt"
	"math"
	"net"
	"slices"

	"github.com/projectdiscovery/mapcidr"
	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/common"
)

// Filter keeps the ratio share (0.0-1.0) of targets most likely to be online.
// The kept targets are returned in their original order. A positive ratio
// always keeps at least one target.
func Filter(targets []string, network *net.IPNet, ratio float64) []string {
	ratio = math.Max(0, math.Min(1, ratio))

	count := int(math.Ceil(float64(len(targets)) * ratio))
	if ratio > 0 && count == 0 && len(targets) > 0 {
		count = 1
	}
	return FilterCount(targets, network, count)
}

// FilterCount keeps the count targets most likely to be online, in their original order
func FilterCount(targets []string, network *net.IPNet, count int) []string {
	if count <= 0 || len(targets) == 0 {
		return []string{}
	}
	if count >= len(targets) {
		return slices.Clone(targets)
	}

	type ranked struct {
		index    int
		value    uint32
		priority int
	}

	candidates := make([]ranked, 0, len(targets))
	for i, target := range targets {
		value, ok := common.ParseIPv4(target)
		if !ok {
			continue
		}
		candidates = append(candidates, ranked{
			index:    i,
			value:    value,
			priority: CalculatePriority(common.Uint32ToIPv4(value), network),
		})
	}

	// highest priority first, then by address for stable selection
	slices.SortFunc(candidates, func(a, b ranked) int {
		if a.priority != b.priority {
			return b.priority - a.priority
		}
		switch {
		case a.value < b.value:
			return -1
		case a.value > b.value:
			return 1
		}
		return 0
	})
	if count > len(candidates) {
		count = len(candidates)
	}
	candidates = candidates[:count]

	// restore the caller's order
	slices.SortFunc(candidates, func(a, b ranked) int { return a.index - b.index })

	selected := make([]string, 0, count)
	for _, c := range candidates {
		selected = append(selected, targets[c.index])
	}
	return selected
}

// SelectIPs returns the ratio share of usable addresses of cidr most likely
// to be online, in ascending order.
func SelectIPs(cidr string, ratio float64) ([]string, error) {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR: %w", err)
	}
	if network.IP.To4() == nil {
		return nil, fmt.Errorf("invalid CIDR: %s is not IPv4", cidr)
	}

	ips, err := mapcidr.IPAddresses(cidr)
	if err != nil {
		return nil, fmt.Errorf("failed to expand CIDR: %w", err)
	}

	// Drop network/broadcast addresses
	usable := make([]string, 0, len(ips))
	for _, ip := range ips {
		if common.IsNetworkOrBroadcast(net.ParseIP(ip), network) {
			continue
		}
		usable = append(usable, ip)
	}
	slices.SortFunc(usable, common.CompareIPv4)

	return Filter(usable, network, ratio), nil
}
