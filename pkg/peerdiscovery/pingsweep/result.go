package pingsweep

import "time"

const (
	StatusUp   = "Up"
	StatusDown = "Down"
)

// Result is the outcome of a single probe
type Result struct {
	IP        string
	Reachable bool
	RTT       time.Duration // Round-trip time, only meaningful when Reachable
	MAC       string        // Hardware address, set when resolved from the ARP table
}

// Up returns a reachable result with the given round-trip time
func Up(ip string, rtt time.Duration) Result {
	if rtt < 0 {
		rtt = 0
	}
	return Result{IP: ip, Reachable: true, RTT: rtt}
}

// Down returns an unreachable result
func Down(ip string) Result {
	return Result{IP: ip}
}

// LatencyMs returns the round-trip time in whole milliseconds.
// ok is false when the host did not answer.
func (r Result) LatencyMs() (ms int64, ok bool) {
	if !r.Reachable {
		return 0, false
	}
	return r.RTT.Milliseconds(), true
}

// Status returns "Up" or "Down"
func (r Result) Status() string {
	if r.Reachable {
		return StatusUp
	}
	return StatusDown
}
