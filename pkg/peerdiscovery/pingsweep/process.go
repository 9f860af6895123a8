package pingsweep

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"time"

	"github.com/projectdiscovery/gologger"
)

// processGrace is added on top of the probe timeout before the ping process
// is killed, to cover process start-up.
const processGrace = 500 * time.Millisecond

var latencyRegex = regexp.MustCompile(`(?i)time\s*([=<])\s*([0-9]+(?:\.[0-9]+)?)\s*ms`)

// ProcessExecutor runs every probe unit as a separate invocation of the
// operating system ping binary.
type ProcessExecutor struct {
	Timeout time.Duration
	Binary  string

	goos    string
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewProcessExecutor creates an executor that shells out to the system ping
func NewProcessExecutor(timeout time.Duration) *ProcessExecutor {
	return &ProcessExecutor{
		Timeout: timeout,
		Binary:  "ping",
		goos:    runtime.GOOS,
		command: exec.CommandContext,
	}
}

// Name returns "process"
func (p *ProcessExecutor) Name() string {
	return ExecutorProcess
}

// Available checks that the ping binary can be found
func (p *ProcessExecutor) Available(_ context.Context) error {
	if _, err := exec.LookPath(p.Binary); err != nil {
		return fmt.Errorf("%s binary not found: %w", p.Binary, err)
	}
	return nil
}

// Submit runs the ping process from a goroutine that waits for it to exit
func (p *ProcessExecutor) Submit(ctx context.Context, ip string, done chan<- Result) {
	go func() {
		done <- p.run(ctx, ip)
	}()
}

func (p *ProcessExecutor) run(ctx context.Context, ip string) Result {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout+processGrace)
	defer cancel()

	cmd := p.command(ctx, p.Binary, pingArgs(p.goos, p.Timeout, ip)...)
	start := time.Now()
	output, err := cmd.Output()
	elapsed := time.Since(start)
	if err != nil {
		gologger.Debug().Msgf("%s %s failed: %v", p.Binary, ip, err)
		return Down(ip)
	}
	// windows ping exits 0 for "destination host unreachable"
	if p.goos == "windows" && !bytes.Contains(bytes.ToUpper(output), []byte("TTL=")) {
		return Down(ip)
	}

	rtt, ok := parseLatency(output)
	if !ok {
		rtt = elapsed
	}
	// ping only takes whole seconds on some platforms, so a late reply can still exit 0
	if rtt > p.Timeout {
		gologger.Debug().Msgf("%s %s replied after %s, timeout is %s", p.Binary, ip, rtt, p.Timeout)
		return Down(ip)
	}
	return Up(ip, rtt)
}

// pingArgs builds single-echo arguments for the ping binary of goos
func pingArgs(goos string, timeout time.Duration, ip string) []string {
	ms := timeout.Milliseconds()
	if ms < 1 {
		ms = 1
	}

	switch goos {
	case "windows":
		return []string{"-n", "1", "-w", strconv.FormatInt(ms, 10), ip}
	case "darwin", "freebsd", "netbsd", "openbsd", "dragonfly":
		// BSD ping takes the reply wait in milliseconds
		return []string{"-n", "-c", "1", "-W", strconv.FormatInt(ms, 10), ip}
	default:
		// iputils ping takes whole seconds
		secs := int64(math.Ceil(timeout.Seconds()))
		if secs < 1 {
			secs = 1
		}
		return []string{"-n", "-c", "1", "-W", strconv.FormatInt(secs, 10), ip}
	}
}

// parseLatency extracts the round-trip time from ping output such as
// "time=12.3 ms" or "time<1ms"
func parseLatency(output []byte) (time.Duration, bool) {
	match := latencyRegex.FindSubmatch(output)
	if match == nil {
		return 0, false
	}
	if string(match[1]) == "<" {
		return 0, true
	}
	value, err := strconv.ParseFloat(string(match[2]), 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(value * float64(time.Millisecond)), true
}
