package pingsweep

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/projectdiscovery/gologger"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// Prober performs exactly one bounded-time reachability check.
// Implementations never fail: any error is reported as an unreachable result.
type Prober interface {
	Probe(ctx context.Context, ip string) Result
}

// Checker is implemented by probers that can tell in advance whether they
// are usable on this host (privileges, sockets).
type Checker interface {
	Available() error
}

// ProberFunc adapts a function to the Prober interface
type ProberFunc func(ctx context.Context, ip string) Result

// Probe calls f(ctx, ip)
func (f ProberFunc) Probe(ctx context.Context, ip string) Result {
	return f(ctx, ip)
}

// echoPayload is carried in every echo request
var echoPayload = []byte("HELLO-R-U-THERE")

// ICMPProber sends one ICMP echo request per probe using golang.org/x/net/icmp.
type ICMPProber struct {
	Timeout time.Duration
	// Privileged selects raw "ip4:icmp" sockets. Otherwise unprivileged
	// datagram ICMP sockets ("udp4") are used, which the kernel must allow.
	Privileged bool

	seq atomic.Uint32
}

// NewICMPProber creates an ICMP prober with the given timeout
func NewICMPProber(timeout time.Duration, privileged bool) *ICMPProber {
	return &ICMPProber{Timeout: timeout, Privileged: privileged}
}

func (p *ICMPProber) network() (string, string) {
	if p.Privileged {
		return "ip4:icmp", "0.0.0.0"
	}
	return "udp4", "0.0.0.0"
}

// Available opens and closes an ICMP socket to check the process may send echoes
func (p *ICMPProber) Available() error {
	network, address := p.network()
	conn, err := icmp.ListenPacket(network, address)
	if err != nil {
		return fmt.Errorf("could not open %s socket: %w", network, err)
	}
	return conn.Close()
}

// Probe sends a single echo request and waits for the matching reply
func (p *ICMPProber) Probe(ctx context.Context, ip string) Result {
	rtt, err := p.ping(ctx, ip)
	if err != nil {
		gologger.Debug().Msgf("icmp probe %s failed: %v", ip, err)
		return Down(ip)
	}
	return Up(ip, rtt)
}

func (p *ICMPProber) ping(ctx context.Context, ip string) (time.Duration, error) {
	dst := net.ParseIP(ip).To4()
	if dst == nil {
		return 0, fmt.Errorf("invalid IPv4 address %q", ip)
	}

	network, address := p.network()
	conn, err := icmp.ListenPacket(network, address)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = conn.Close()
	}()

	deadline := time.Now().Add(p.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return 0, err
	}

	// unblock the read as soon as the scan is cancelled
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	id := os.Getpid() & 0xffff
	seq := int(p.seq.Add(1) & 0xffff)
	msg := &icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   id,
			Seq:  seq,
			Data: echoPayload,
		},
	}
	msgBytes, err := msg.Marshal(nil)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal ICMP message: %w", err)
	}

	var dstAddr net.Addr = &net.IPAddr{IP: dst}
	if !p.Privileged {
		dstAddr = &net.UDPAddr{IP: dst}
	}

	start := time.Now()
	if _, err := conn.WriteTo(msgBytes, dstAddr); err != nil {
		return 0, err
	}

	reply := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(reply)
		if err != nil {
			return 0, err
		}

		rm, err := icmp.ParseMessage(ipv4.ICMPTypeEchoReply.Protocol(), reply[:n])
		if err != nil {
			continue
		}
		if rm.Type != ipv4.ICMPTypeEchoReply {
			continue
		}
		echo, ok := rm.Body.(*icmp.Echo)
		if !ok || echo.Seq != seq {
			continue
		}
		// datagram sockets get their ID rewritten by the kernel
		if p.Privileged && echo.ID != id {
			continue
		}
		if !peerMatches(peer, dst) {
			continue
		}
		return time.Since(start), nil
	}
}

func peerMatches(peer net.Addr, dst net.IP) bool {
	switch addr := peer.(type) {
	case *net.IPAddr:
		return addr.IP.Equal(dst)
	case *net.UDPAddr:
		return addr.IP.Equal(dst)
	}
	return false
}
