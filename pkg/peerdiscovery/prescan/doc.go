// Package prescan selects the most likely-to-be-online IPs from a range based on
// real-world network patterns. Most active hosts are in the top 20% of IPs
// (routers, gateways, early DHCP allocations).
//
// Priority tiers by last octet (0-100):
//   - 100: .1, .254 (routers/gateways - always check these first)
//   - 90:  .2-.5, .250-.253 (reserved infrastructure)
//   - 80:  .6-.10 (early DHCP - devices that connect first)
//   - 70:  .50, .100, .150 (DHCP peaks - common allocation points)
//   - 50:  .51-.99, .101-.149, .151-.200 (main DHCP pool)
//   - 20:  .11-.49, .201-.249 (long-tail, lower probability)
//   - 0:   .0, .255, network and broadcast addresses
//
// Example:
//
//	// Keep the top 25% of an already expanded target list, order preserved
//	targets = prescan.Filter(targets, network, 0.25)
//
//	// Or straight from a CIDR
//	ips, err := prescan.SelectIPs("192.168.1.0/24", 0.25)
package prescan
