package common

import (
	"net"
	"net/netip"
)

// IsNetworkOrBroadcast checks if an IPv4 address is the network or broadcast address
// of the given network. /31 and /32 networks have no distinct network or broadcast
// address, so nothing in them is reported.
func IsNetworkOrBroadcast(ip net.IP, network *net.IPNet) bool {
	if network == nil {
		return false
	}

	ip4 := ip.To4()
	base := network.IP.To4()
	if ip4 == nil || base == nil {
		return false
	}

	ones, bits := network.Mask.Size()
	if bits != 32 || ones >= 31 {
		return false
	}

	mask := ^uint32(0) << (32 - ones)
	value := IPv4ToUint32(ip4)
	networkAddr := IPv4ToUint32(base) & mask
	broadcastAddr := networkAddr | ^mask
	return value == networkAddr || value == broadcastAddr
}

// IPv4ToUint32 converts an IPv4 address to its big-endian integer value.
// Non IPv4 input returns 0.
func IPv4ToUint32(ip net.IP) uint32 {
	ip4 := ip.To4()
	if ip4 == nil {
		return 0
	}
	return uint32(ip4[0])<<24 | uint32(ip4[1])<<16 | uint32(ip4[2])<<8 | uint32(ip4[3])
}

// Uint32ToIPv4 converts an integer value back into an IPv4 address
func Uint32ToIPv4(u uint32) net.IP {
	return net.IPv4(byte(u>>24), byte(u>>16), byte(u>>8), byte(u)).To4()
}

// FormatIPv4 renders an integer value as a dotted-quad string
func FormatIPv4(u uint32) string {
	return netip.AddrFrom4([4]byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}).String()
}

// ParseIPv4 parses a dotted-quad string into its integer value.
func ParseIPv4(s string) (uint32, bool) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return 0, false
	}
	b := addr.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), true
}

// CompareIPv4 orders two dotted-quad strings by their 32-bit value.
// Unparseable strings sort after every valid address and among themselves lexically.
func CompareIPv4(a, b string) int {
	ua, okA := ParseIPv4(a)
	ub, okB := ParseIPv4(b)
	switch {
	case okA && okB:
		switch {
		case ua < ub:
			return -1
		case ua > ub:
			return 1
		}
		return 0
	case okA:
		return -1
	case okB:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
