package pingsweep

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/projectdiscovery/gologger"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

// Executor runs probe units. Submit starts one unit for ip and returns
// immediately; the unit sends exactly one Result on done when it finishes.
// The scheduler is written only against this interface, so lightweight and
// isolated backends are interchangeable.
type Executor interface {
	Name() string
	// Available returns nil if the backend can run on this host
	Available(ctx context.Context) error
	Submit(ctx context.Context, ip string, done chan<- Result)
}

// Executor names accepted by ExecutorPreference
const (
	ExecutorAuto      = "auto"
	ExecutorGoroutine = "goroutine"
	ExecutorProcess   = "process"
)

// GoroutineExecutor runs each probe unit in its own goroutine
type GoroutineExecutor struct {
	prober Prober
}

// NewGoroutineExecutor creates an in-process executor around prober
func NewGoroutineExecutor(prober Prober) *GoroutineExecutor {
	return &GoroutineExecutor{prober: prober}
}

// Name returns "goroutine"
func (g *GoroutineExecutor) Name() string {
	return ExecutorGoroutine
}

// Available delegates to the prober when it can check itself
func (g *GoroutineExecutor) Available(_ context.Context) error {
	if g.prober == nil {
		return errors.New("no prober configured")
	}
	if checker, ok := g.prober.(Checker); ok {
		return checker.Available()
	}
	return nil
}

// Submit starts the probe in a new goroutine
func (g *GoroutineExecutor) Submit(ctx context.Context, ip string, done chan<- Result) {
	go func() {
		done <- g.prober.Probe(ctx, ip)
	}()
}

// SelectExecutor returns the first available executor in preference order.
// Unavailable candidates are logged and skipped. Having none available is a
// configuration error.
func SelectExecutor(ctx context.Context, candidates ...Executor) (Executor, error) {
	var reasons []string
	for i, candidate := range candidates {
		if candidate == nil {
			continue
		}
		err := candidate.Available(ctx)
		if err == nil {
			if i > 0 {
				gologger.Warning().Msgf("falling back to %s executor", candidate.Name())
			}
			return candidate, nil
		}
		gologger.Verbose().Msgf("%s executor unavailable: %v", candidate.Name(), err)
		reasons = append(reasons, fmt.Sprintf("%s: %v", candidate.Name(), err))
	}
	if len(reasons) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, ErrNoExecutor)
	}
	return nil, fmt.Errorf("%w: %w (%s)", ErrConfiguration, ErrNoExecutor, strings.Join(reasons, "; "))
}

// ExecutorPreference expands an executor setting into the ordered list of
// backends to try. It accepts "auto" or a comma separated list such as
// "process,goroutine".
func ExecutorPreference(value string) ([]string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == ExecutorAuto {
		return []string{ExecutorGoroutine, ExecutorProcess}, nil
	}

	var names []string
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		switch name {
		case "":
			continue
		case ExecutorGoroutine, ExecutorProcess:
			names = append(names, name)
		default:
			return nil, configErrorf("executor", "unknown executor %q (want auto, goroutine or process)", name)
		}
	}
	if len(names) == 0 {
		return nil, configErrorf("executor", "no executor specified")
	}
	return sliceutil.Dedupe(names), nil
}
