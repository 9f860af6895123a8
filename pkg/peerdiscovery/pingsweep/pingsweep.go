package pingsweep

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/common"
	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/prescan"
)

const (
	DefaultTimeout     = 500 * time.Millisecond
	DefaultConcurrency = 64

	// EngineICMP probes with golang.org/x/net/icmp
	EngineICMP = "icmp"
	// EngineLibrary probes with github.com/go-ping/ping
	EngineLibrary = "library"

	// maxPrescanTargets bounds the ranges prescan is allowed to expand
	maxPrescanTargets = 1 << 20
)

// Config holds the read-only settings of a sweep
type Config struct {
	Timeout            time.Duration
	Concurrency        int
	IncludeUnreachable bool
	ShowProgress       bool
	// Progress receives updates in sequential mode when ShowProgress is set
	Progress Progress
	// Executor is "auto" or a comma separated preference list of backends
	Executor   string
	Engine     string
	Privileged bool
	// PrescanRatio restricts the sweep to the most likely online share of
	// the range (0 < ratio < 1). Zero disables it.
	PrescanRatio float64
}

// DefaultConfig returns the default sweep settings
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		Executor:    ExecutorAuto,
		Engine:      EngineICMP,
		Privileged:  DefaultPrivileged(),
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return configErrorf("timeout", "timeout must be greater than zero")
	}
	if c.Concurrency < 1 {
		return configErrorf("concurrency", "concurrency must be at least 1")
	}
	switch strings.ToLower(c.Engine) {
	case "", EngineICMP, EngineLibrary:
	default:
		return configErrorf("engine", "unknown engine %q (want icmp or library)", c.Engine)
	}
	if c.PrescanRatio < 0 || c.PrescanRatio > 1 {
		return configErrorf("prescan", "ratio %v must be between 0 and 1", c.PrescanRatio)
	}
	if _, err := ExecutorPreference(c.Executor); err != nil {
		return err
	}
	return nil
}

// Mode returns the scheduling mode selected by the concurrency setting
func (c *Config) Mode() Mode {
	return ModeFor(c.Concurrency)
}

func (c *Config) prober() Prober {
	if strings.ToLower(c.Engine) == EngineLibrary {
		return NewLibraryProber(c.Timeout, c.Privileged)
	}
	return NewICMPProber(c.Timeout, c.Privileged)
}

func (c *Config) executors() ([]Executor, error) {
	names, err := ExecutorPreference(c.Executor)
	if err != nil {
		return nil, err
	}

	executors := make([]Executor, 0, len(names))
	for _, name := range names {
		switch name {
		case ExecutorGoroutine:
			executors = append(executors, NewGoroutineExecutor(c.prober()))
		case ExecutorProcess:
			executors = append(executors, NewProcessExecutor(c.Timeout))
		}
	}
	return executors, nil
}

// Sweeper runs sweeps with a fixed configuration and execution backend
type Sweeper struct {
	config   Config
	executor Executor
}

// New validates config and selects the first available execution backend
func New(ctx context.Context, config Config) (*Sweeper, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	executors, err := config.executors()
	if err != nil {
		return nil, err
	}
	executor, err := SelectExecutor(ctx, executors...)
	if err != nil {
		return nil, err
	}
	return &Sweeper{config: config, executor: executor}, nil
}

// NewWithExecutor validates config and uses the given backend as is
func NewWithExecutor(config Config, executor Executor) (*Sweeper, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if executor == nil {
		return nil, ErrNoExecutor
	}
	return &Sweeper{config: config, executor: executor}, nil
}

// Executor returns the selected execution backend
func (s *Sweeper) Executor() Executor {
	return s.executor
}

// Sweep probes every target of the range and adds the results to agg.
// On cancellation the partial results stay in agg and ctx.Err() is returned.
func (s *Sweeper) Sweep(ctx context.Context, spec *RangeSpec, agg *Aggregator) error {
	targets, total, err := s.targets(spec)
	if err != nil {
		return err
	}

	var progress Progress
	if s.config.ShowProgress {
		progress = s.config.Progress
	}

	gologger.Verbose().Msgf("sweeping %s (%d targets, %s executor, concurrency %d)", spec, total, s.executor.Name(), s.config.Concurrency)
	scheduler := NewScheduler(s.executor, s.config.Mode(), progress)
	return scheduler.Run(ctx, targets, total, agg)
}

func (s *Sweeper) targets(spec *RangeSpec) (iter.Seq[string], int64, error) {
	if s.config.PrescanRatio <= 0 || s.config.PrescanRatio >= 1 {
		return spec.All(), int64(spec.Len()), nil
	}
	if spec.Len() > maxPrescanTargets {
		return nil, 0, configErrorf("prescan", "range %s is too large for prescan (%d addresses, max %d)", spec, spec.Len(), maxPrescanTargets)
	}

	var selected []string
	switch spec.Kind() {
	case RangeCIDR:
		ips, err := prescan.SelectIPs(spec.Network().String(), s.config.PrescanRatio)
		if err != nil {
			return nil, 0, configErrorf("prescan", "%v", err)
		}
		selected = ips
	default:
		selected = prescan.Filter(spec.Slice(), spec.Network(), s.config.PrescanRatio)
	}
	gologger.Verbose().Msgf("prescan selected %d of %d targets in %s", len(selected), spec.Len(), spec)
	return slices.Values(selected), int64(len(selected)), nil
}

// Sweep probes a range with config and returns the ordered results
func Sweep(ctx context.Context, spec *RangeSpec, config Config) ([]Result, error) {
	sweeper, err := New(ctx, config)
	if err != nil {
		return nil, err
	}
	agg := NewAggregator(config.IncludeUnreachable)
	err = sweeper.Sweep(ctx, spec, agg)
	return agg.Results(), err
}

// LocalRanges returns a range for every private /24 network of the local interfaces
func LocalRanges() ([]*RangeSpec, error) {
	networks, err := common.GetLocalNetworks24()
	if err != nil {
		return nil, fmt.Errorf("failed to get local networks: %w", err)
	}

	ranges := make([]*RangeSpec, 0, len(networks))
	for _, network := range networks {
		spec, err := NewCIDRRange(network.String())
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, spec)
	}
	return ranges, nil
}

// SweepAll probes each range in turn into agg, stopping at the first error
func (s *Sweeper) SweepAll(ctx context.Context, specs []*RangeSpec, agg *Aggregator) error {
	for _, spec := range specs {
		if err := s.Sweep(ctx, spec, agg); err != nil {
			return err
		}
	}
	return nil
}

// Autodiscover sweeps every private /24 network attached to this host
func Autodiscover(ctx context.Context, config Config) ([]Result, error) {
	specs, err := LocalRanges()
	if err != nil {
		return nil, err
	}
	sweeper, err := New(ctx, config)
	if err != nil {
		return nil, err
	}
	agg := NewAggregator(config.IncludeUnreachable)
	err = sweeper.SweepAll(ctx, specs, agg)
	return agg.Results(), err
}
