package pingsweep

import (
	"context"
	"time"

	//nolint:staticcheck // archived upstream
	"github.com/go-ping/ping"
	"github.com/projectdiscovery/gologger"
)

// Pinger is the subset of github.com/go-ping/ping used by LibraryProber
type Pinger interface {
	Run() error
	Stop()
	Statistics() *ping.Statistics

	SetPrivileged(bool)
	SetCount(int)
	SetTimeout(time.Duration)
}

// PingerFactory creates a pinger for one address
type PingerFactory func(ip string) (Pinger, error)

// LibraryProber probes hosts with the go-ping library, one echo per probe
type LibraryProber struct {
	Timeout    time.Duration
	Privileged bool

	factory PingerFactory
}

// NewLibraryProber creates a go-ping backed prober
func NewLibraryProber(timeout time.Duration, privileged bool) *LibraryProber {
	return &LibraryProber{
		Timeout:    timeout,
		Privileged: privileged,
		factory: func(ip string) (Pinger, error) {
			p, err := ping.NewPinger(ip)
			if err != nil {
				return nil, err
			}
			return &pingerAdapter{p: p}, nil
		},
	}
}

// WithFactory replaces the pinger factory
func (l *LibraryProber) WithFactory(factory PingerFactory) *LibraryProber {
	l.factory = factory
	return l
}

// Probe runs a single-count ping against ip
func (l *LibraryProber) Probe(ctx context.Context, ip string) Result {
	pinger, err := l.factory(ip)
	if err != nil {
		gologger.Debug().Msgf("could not create pinger for %s: %v", ip, err)
		return Down(ip)
	}

	pinger.SetPrivileged(l.Privileged)
	pinger.SetCount(1)
	pinger.SetTimeout(l.Timeout)

	stop := context.AfterFunc(ctx, pinger.Stop)
	defer stop()

	if err := pinger.Run(); err != nil {
		gologger.Debug().Msgf("ping %s failed: %v", ip, err)
		return Down(ip)
	}

	stats := pinger.Statistics()
	if stats == nil || stats.PacketsRecv == 0 || ctx.Err() != nil {
		return Down(ip)
	}

	rtt := stats.AvgRtt
	if len(stats.Rtts) > 0 {
		rtt = stats.Rtts[0]
	}
	return Up(ip, rtt)
}

// pingerAdapter wraps *ping.Pinger to implement Pinger
type pingerAdapter struct {
	p *ping.Pinger
}

func (a *pingerAdapter) Run() error                   { return a.p.Run() }
func (a *pingerAdapter) Stop()                        { a.p.Stop() }
func (a *pingerAdapter) Statistics() *ping.Statistics { return a.p.Statistics() }
func (a *pingerAdapter) SetPrivileged(v bool)         { a.p.SetPrivileged(v) }
func (a *pingerAdapter) SetCount(c int)               { a.p.Count = c }
func (a *pingerAdapter) SetTimeout(t time.Duration)   { a.p.Timeout = t }
