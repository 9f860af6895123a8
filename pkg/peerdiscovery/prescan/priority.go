package prescan

import (
	"net"

	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/common"
)

// Priority tiers based on real-world network patterns
const (
	PriorityTier1 = 100 // .1, .254 (routers/gateways)
	PriorityTier2 = 90  // .2-.5, .250-.253 (reserved)
	PriorityTier3 = 80  // .6-.10 (early DHCP)
	PriorityTier4 = 70  // .50, .100, .150 (DHCP peaks)
	PriorityTier5 = 50  // .51-.99, .101-.149, .151-.200 (DHCP pool)
	PriorityTier6 = 20  // .11-.49, .201-.249 (long-tail)
	PriorityTier7 = 0   // .0, .255 and network/broadcast addresses
)

// octetRange assigns a priority to the last octets first..last
type octetRange struct {
	first, last int
	priority    int
}

// later entries override earlier ones
var octetRanges = []octetRange{
	{0, 255, PriorityTier6},
	{51, 99, PriorityTier5},
	{101, 149, PriorityTier5},
	{151, 200, PriorityTier5},
	{50, 50, PriorityTier4},
	{100, 100, PriorityTier4},
	{150, 150, PriorityTier4},
	{6, 10, PriorityTier3},
	{2, 5, PriorityTier2},
	{250, 253, PriorityTier2},
	{1, 1, PriorityTier1},
	{254, 254, PriorityTier1},
	{0, 0, PriorityTier7},
	{255, 255, PriorityTier7},
}

// octetPriority is the priority of every possible last octet
var octetPriority = func() (table [256]int) {
	for _, r := range octetRanges {
		for octet := r.first; octet <= r.last; octet++ {
			table[octet] = r.priority
		}
	}
	return table
}()

// CalculatePriority returns priority score (0-100) for an IP in a network.
// Higher scores mean more likely to be online.
func CalculatePriority(ip net.IP, network *net.IPNet) int {
	ip4 := ip.To4()
	if ip4 == nil {
		return PriorityTier6
	}
	if common.IsNetworkOrBroadcast(ip4, network) {
		return PriorityTier7
	}
	return octetPriority[ip4[3]]
}
