// Package pingsweep discovers reachable IPv4 hosts in an address range using
// one ICMP echo per address.
//
// A sweep is made of four parts:
//   - RangeSpec: expands a CIDR ("10.0.0.0/24") or a base/start/end triple
//     ("192.168.1", 1, 254) into ascending, unique addresses
//   - Prober: sends exactly one echo request under a timeout and reports the
//     outcome; failures never escape, they become unreachable results
//   - Scheduler: drives targets through an Executor either sequentially (with
//     optional progress) or with at most N probes outstanding
//   - Aggregator: collects results from concurrent probes and returns them
//     ordered by address, optionally dropping unreachable hosts
//
// Executors are interchangeable backends for probe units. GoroutineExecutor
// runs a Prober in-process; ProcessExecutor runs the system ping binary once
// per address. SelectExecutor picks the first one that is usable on the host.
//
// Example usage:
//
//	spec, err := pingsweep.ParseRangeSpec("192.168.1.0/24", "", 0, 0)
//	results, err := pingsweep.Sweep(ctx, spec, pingsweep.DefaultConfig())
//
//	// Sweep every private /24 network attached to this host
//	results, err := pingsweep.Autodiscover(ctx, pingsweep.DefaultConfig())
//
// Privilege Requirements:
// - Raw ICMP sockets require root/admin privileges on most systems
// - Without them the unprivileged datagram socket is used, which Linux only
//   allows for groups listed in net.ipv4.ping_group_range
// - When neither works the process executor falls back to the setuid ping binary
//
// Limitations:
// - Hosts with ICMP disabled or firewalled will not respond
// - Some networks may rate-limit ICMP traffic
// - No retries: a single lost packet reports the host as down
package pingsweep
