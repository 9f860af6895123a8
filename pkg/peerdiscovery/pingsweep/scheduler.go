package pingsweep

import (
	"context"
	"fmt"
	"iter"
)

// Mode selects how the scheduler drives probes. It is either Sequential or
// Concurrent and is chosen once, before the scan starts.
type Mode interface {
	isMode()
}

// Sequential probes one target at a time in range order
type Sequential struct{}

// Concurrent keeps at most Limit probes outstanding
type Concurrent struct {
	Limit int
}

func (Sequential) isMode() {}
func (Concurrent) isMode() {}

// ModeFor maps a concurrency setting to a scheduling mode
func ModeFor(concurrency int) Mode {
	if concurrency <= 1 {
		return Sequential{}
	}
	return Concurrent{Limit: concurrency}
}

// Progress receives sequential sweep progress
type Progress interface {
	// Update is called before probing the index-th (1-based) of total targets
	Update(index, total int64, ip string)
	// Done is called once after the last probe
	Done()
}

// Scheduler drives targets through an Executor into an Aggregator
type Scheduler struct {
	executor Executor
	mode     Mode
	progress Progress
}

// NewScheduler creates a scheduler. progress may be nil and is only used in
// sequential mode.
func NewScheduler(executor Executor, mode Mode, progress Progress) *Scheduler {
	return &Scheduler{executor: executor, mode: mode, progress: progress}
}

// Run probes every target and adds each result to agg. When ctx is cancelled
// no further targets are submitted, outstanding probes run to completion or
// timeout, and ctx.Err() is returned with the partial results left in agg.
func (s *Scheduler) Run(ctx context.Context, targets iter.Seq[string], total int64, agg *Aggregator) error {
	switch mode := s.mode.(type) {
	case Sequential:
		return s.runSequential(ctx, targets, total, agg)
	case Concurrent:
		return s.runConcurrent(ctx, targets, mode.Limit, agg)
	default:
		panic(fmt.Sprintf("pingsweep: unknown scheduler mode %T", s.mode))
	}
}

func (s *Scheduler) runSequential(ctx context.Context, targets iter.Seq[string], total int64, agg *Aggregator) error {
	probeCtx := context.WithoutCancel(ctx)
	done := make(chan Result, 1)

	var cancelled bool
	var index int64
	for ip := range targets {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		index++
		if s.progress != nil {
			s.progress.Update(index, total, ip)
		}
		s.executor.Submit(probeCtx, ip, done)
		agg.Add(<-done)
	}

	if s.progress != nil {
		s.progress.Done()
	}
	if cancelled {
		return ctx.Err()
	}
	return nil
}

func (s *Scheduler) runConcurrent(ctx context.Context, targets iter.Seq[string], limit int, agg *Aggregator) error {
	if limit < 1 {
		limit = 1
	}
	probeCtx := context.WithoutCancel(ctx)
	done := make(chan Result, limit)

	var cancelled bool
	outstanding := 0
	for ip := range targets {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		if outstanding == limit {
			agg.Add(<-done)
			outstanding--
		}

		s.executor.Submit(probeCtx, ip, done)
		outstanding++
		// unreachable while the harvest above runs at the cap
		if outstanding > limit {
			panic(ErrSchedulerInvariant)
		}
	}

	for ; outstanding > 0; outstanding-- {
		agg.Add(<-done)
	}

	if cancelled {
		return ctx.Err()
	}
	return nil
}
