package common

import (
	"net"
)

// interfaceAddrs lists the addresses of every up, non-loopback interface.
// Replaced in tests.
var interfaceAddrs = func() ([]net.Addr, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var all []net.Addr
	for _, iface := range interfaces {
		// Skip loopback and down interfaces
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		all = append(all, addrs...)
	}
	return all, nil
}

// GetLocalNetworks24 returns all local network interfaces as /24 IPNet ranges (IPv4 only)
func GetLocalNetworks24() ([]*net.IPNet, error) {
	addrs, err := interfaceAddrs()
	if err != nil {
		return nil, err
	}
	return privateNetworks24(addrs), nil
}

// privateNetworks24 converts interface addresses to unique private /24 networks,
// keeping the order in which they were first seen.
func privateNetworks24(addrs []net.Addr) []*net.IPNet {
	var networks []*net.IPNet
	seen := make(map[string]struct{})

	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		default:
			continue
		}

		// Only process IPv4 addresses
		ip4 := ip.To4()
		if ip4 == nil {
			continue
		}

		// Only process private networks
		if !ip4.IsPrivate() {
			continue
		}

		// Convert to /24 network
		mask24 := net.CIDRMask(24, 32)
		network24 := &net.IPNet{
			IP:   ip4.Mask(mask24),
			Mask: mask24,
		}

		// Avoid duplicates
		key := network24.String()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}

		networks = append(networks, network24)
	}

	return networks
}
