// Package arp reads the operating system's ARP table and attaches MAC
// addresses to reachable sweep results.
//
// Sweeping an on-link network makes the OS resolve every answering host, so
// reading the table after a sweep yields the hardware address of most hosts
// on the same segment. Hosts behind a router only show the router's MAC and
// are not annotated because their addresses are not in the table.
//
// Sources:
//   - Linux: /proc/net/arp
//   - macOS: arp -an
//   - Windows: arp -a
package arp
