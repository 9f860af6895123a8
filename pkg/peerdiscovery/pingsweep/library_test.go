package pingsweep

import (
	"context"
	"errors"
	"testing"
	"time"

	//nolint:staticcheck // archived upstream
	"github.com/go-ping/ping"
)

type fakePinger struct {
	stats  *ping.Statistics
	runErr error

	privileged bool
	count      int
	timeout    time.Duration
}

func (f *fakePinger) Run() error                   { return f.runErr }
func (f *fakePinger) Stop()                        {}
func (f *fakePinger) Statistics() *ping.Statistics { return f.stats }
func (f *fakePinger) SetPrivileged(v bool)         { f.privileged = v }
func (f *fakePinger) SetCount(c int)               { f.count = c }
func (f *fakePinger) SetTimeout(t time.Duration)   { f.timeout = t }

func TestLibraryProber(t *testing.T) {
	tests := []struct {
		name       string
		pinger     *fakePinger
		factoryErr error
		want       Result
	}{
		{
			name:   "reply",
			pinger: &fakePinger{stats: &ping.Statistics{PacketsSent: 1, PacketsRecv: 1, Rtts: []time.Duration{7 * time.Millisecond}, AvgRtt: 9 * time.Millisecond}},
			want:   Up("10.0.0.1", 7*time.Millisecond),
		},
		{
			name:   "average only",
			pinger: &fakePinger{stats: &ping.Statistics{PacketsSent: 1, PacketsRecv: 1, AvgRtt: 9 * time.Millisecond}},
			want:   Up("10.0.0.1", 9*time.Millisecond),
		},
		{
			name:   "no reply",
			pinger: &fakePinger{stats: &ping.Statistics{PacketsSent: 1}},
			want:   Down("10.0.0.1"),
		},
		{
			name:   "run error",
			pinger: &fakePinger{runErr: errors.New("socket: operation not permitted")},
			want:   Down("10.0.0.1"),
		},
		{
			name:       "factory error",
			factoryErr: errors.New("no such host"),
			want:       Down("10.0.0.1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := NewLibraryProber(300*time.Millisecond, true).WithFactory(func(string) (Pinger, error) {
				if tt.factoryErr != nil {
					return nil, tt.factoryErr
				}
				return tt.pinger, nil
			})

			if got := prober.Probe(context.Background(), "10.0.0.1"); got != tt.want {
				t.Errorf("Probe() = %+v, want %+v", got, tt.want)
			}
			if tt.pinger != nil {
				if tt.pinger.count != 1 || tt.pinger.timeout != 300*time.Millisecond || !tt.pinger.privileged {
					t.Errorf("pinger configured with count=%d timeout=%s privileged=%v", tt.pinger.count, tt.pinger.timeout, tt.pinger.privileged)
				}
			}
		})
	}
}

func TestICMPProberInvalidAddress(t *testing.T) {
	got := NewICMPProber(100*time.Millisecond, false).Probe(context.Background(), "not-an-ip")
	if got != Down("not-an-ip") {
		t.Errorf("Probe() = %+v, want unreachable", got)
	}
}
