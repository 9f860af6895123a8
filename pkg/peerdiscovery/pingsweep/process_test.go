package pingsweep

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// helperCommand runs TestHelperProcess in place of the ping binary
func helperCommand(mode string) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "PING_HELPER_MODE="+mode)
		return cmd
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("PING_HELPER_MODE") {
	case "up":
		fmt.Println("PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.")
		fmt.Println("64 bytes from 10.0.0.1: icmp_seq=1 ttl=64 time=12.5 ms")
		os.Exit(0)
	case "late":
		fmt.Println("64 bytes from 10.0.0.1: icmp_seq=1 ttl=64 time=900 ms")
		os.Exit(0)
	case "up-no-time":
		fmt.Println("1 packets transmitted, 1 received")
		os.Exit(0)
	case "windows-unreachable":
		fmt.Println("Reply from 10.0.0.254: Destination host unreachable.")
		os.Exit(0)
	case "windows-up":
		fmt.Println("Reply from 10.0.0.1: bytes=32 time<1ms TTL=128")
		os.Exit(0)
	default:
		fmt.Println("1 packets transmitted, 0 received, 100% packet loss")
		os.Exit(1)
	}
}

func newHelperExecutor(goos, mode string, timeout time.Duration) *ProcessExecutor {
	return &ProcessExecutor{
		Timeout: timeout,
		Binary:  "ping",
		goos:    goos,
		command: helperCommand(mode),
	}
}

func TestProcessExecutorRun(t *testing.T) {
	tests := []struct {
		name   string
		goos   string
		mode   string
		want   bool
		rtt    time.Duration
		anyRTT bool
	}{
		{name: "reply", goos: "linux", mode: "up", want: true, rtt: 12500 * time.Microsecond},
		{name: "reply without time", goos: "linux", mode: "up-no-time", want: true, anyRTT: true},
		{name: "no reply", goos: "linux", mode: "down"},
		{name: "windows unreachable", goos: "windows", mode: "windows-unreachable"},
		{name: "windows reply", goos: "windows", mode: "windows-up", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := newHelperExecutor(tt.goos, tt.mode, 5*time.Second)
			done := make(chan Result, 1)
			executor.Submit(context.Background(), "10.0.0.1", done)

			result := <-done
			require.Equal(t, "10.0.0.1", result.IP)
			require.Equal(t, tt.want, result.Reachable)
			if tt.want && !tt.anyRTT {
				require.Equal(t, tt.rtt, result.RTT)
			}
		})
	}
}

func TestProcessExecutorLateReply(t *testing.T) {
	executor := newHelperExecutor("linux", "late", 500*time.Millisecond)
	require.Equal(t, []string{"-n", "-c", "1", "-W", "1", "10.0.0.1"}, pingArgs(executor.goos, executor.Timeout, "10.0.0.1"))

	result := executor.run(context.Background(), "10.0.0.1")
	require.Equal(t, Down("10.0.0.1"), result)
}

func TestProcessExecutorAvailable(t *testing.T) {
	executor := NewProcessExecutor(time.Second)
	executor.Binary = "pdping-missing-binary"
	require.Error(t, executor.Available(context.Background()))
	require.Equal(t, ExecutorProcess, executor.Name())
}

func TestPingArgs(t *testing.T) {
	tests := []struct {
		goos    string
		timeout time.Duration
		want    []string
	}{
		{"windows", 1500 * time.Millisecond, []string{"-n", "1", "-w", "1500", "10.0.0.1"}},
		{"darwin", 1500 * time.Millisecond, []string{"-n", "-c", "1", "-W", "1500", "10.0.0.1"}},
		{"freebsd", 250 * time.Millisecond, []string{"-n", "-c", "1", "-W", "250", "10.0.0.1"}},
		{"linux", 1500 * time.Millisecond, []string{"-n", "-c", "1", "-W", "2", "10.0.0.1"}},
		{"linux", 200 * time.Millisecond, []string{"-n", "-c", "1", "-W", "1", "10.0.0.1"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.goos, tt.timeout), func(t *testing.T) {
			require.Equal(t, tt.want, pingArgs(tt.goos, tt.timeout, "10.0.0.1"))
		})
	}
}

func TestParseLatency(t *testing.T) {
	tests := []struct {
		output string
		want   time.Duration
		ok     bool
	}{
		{"64 bytes from 10.0.0.1: icmp_seq=1 ttl=64 time=12.5 ms", 12500 * time.Microsecond, true},
		{"64 bytes from 10.0.0.1: icmp_seq=0 ttl=64 time=0.25 ms", 250 * time.Microsecond, true},
		{"Reply from 10.0.0.1: bytes=32 time=3ms TTL=128", 3 * time.Millisecond, true},
		{"Reply from 10.0.0.1: bytes=32 time<1ms TTL=128", 0, true},
		{"Request timed out.", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			got, ok := parseLatency([]byte(tt.output))
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
