package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/pdping/pkg/output"
	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/arp"
	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/pingsweep"
	"github.com/rs/xid"
)

const arpTimeout = 5 * time.Second

// Runner contains the internal logic of the program
type Runner struct {
	options *Options
	config  pingsweep.Config
	ranges  []*pingsweep.RangeSpec
	stdout  io.Writer

	// executor overrides executor selection when set
	executor pingsweep.Executor
}

// NewRunner validates options before anything is probed
func NewRunner(options *Options) (*Runner, error) {
	config, err := options.sweepConfig()
	if err != nil {
		return nil, err
	}
	ranges, err := options.ranges()
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return nil, &pingsweep.ConfigError{Field: "auto", Message: "no private IPv4 networks found on local interfaces"}
	}

	if config.ShowProgress {
		if config.Concurrency > 1 {
			gologger.Warning().Msgf("progress is only shown in sequential mode (concurrency 1)")
		}
		config.Progress = newProgressBar(options.NoColor)
	}

	return &Runner{
		options: options,
		config:  config,
		ranges:  ranges,
		stdout:  os.Stdout,
	}, nil
}

// Run sweeps every range and writes the results. When ctx is cancelled the
// results gathered so far are still written.
func (r *Runner) Run(ctx context.Context) error {
	scanID := xid.New().String()
	start := time.Now()

	sweeper, err := r.sweeper(ctx)
	if err != nil {
		return err
	}
	gologger.Info().Msgf("Starting scan %s with the %s executor", scanID, sweeper.Executor().Name())

	agg := pingsweep.NewAggregator(r.config.IncludeUnreachable)
	sweepErr := sweeper.SweepAll(ctx, r.ranges, agg)
	switch {
	case errors.Is(sweepErr, context.Canceled):
		gologger.Warning().Msgf("Scan %s interrupted, writing partial results", scanID)
	case sweepErr != nil:
		return sweepErr
	}

	results := agg.Results()
	if r.options.ARP {
		r.annotate(ctx, results)
	}
	if err := r.write(scanID, results); err != nil {
		return err
	}

	stats := agg.Stats()
	gologger.Info().Msgf("Scan %s finished in %s: %d up, %d down (%d probed)",
		scanID, time.Since(start).Round(time.Millisecond), stats.Up, stats.Down, stats.Total)

	if r.options.CSVOutput != "" {
		if err := output.WriteCSVFile(r.options.CSVOutput, results); err != nil {
			return fmt.Errorf("could not write csv report: %w", err)
		}
		gologger.Info().Msgf("Results written to %s", r.options.CSVOutput)
	}
	return nil
}

func (r *Runner) sweeper(ctx context.Context) (*pingsweep.Sweeper, error) {
	if r.executor != nil {
		return pingsweep.NewWithExecutor(r.config, r.executor)
	}
	return pingsweep.New(ctx, r.config)
}

// annotate attaches MAC addresses from the ARP table, which the sweep has just populated
func (r *Runner) annotate(ctx context.Context, results []pingsweep.Result) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), arpTimeout)
	defer cancel()

	table, err := arp.ReadTable(ctx)
	if err != nil {
		gologger.Warning().Msgf("Could not add MAC addresses: %s", err)
		return
	}
	annotated := arp.Annotate(results, table)
	gologger.Verbose().Msgf("Resolved MAC addresses for %d hosts", annotated)
}

func (r *Runner) write(scanID string, results []pingsweep.Result) error {
	if r.options.JSON {
		return output.WriteJSON(r.stdout, scanID, results)
	}
	if len(results) == 0 {
		gologger.Info().Msgf("No hosts found")
		return nil
	}
	return output.WriteTable(r.stdout, results, r.options.NoColor)
}
