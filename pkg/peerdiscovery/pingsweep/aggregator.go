package pingsweep

import (
	"slices"
	"sync/atomic"

	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/common"
	mapsutil "github.com/projectdiscovery/utils/maps"
)

// Stats summarizes the results harvested by an Aggregator
type Stats struct {
	Total int
	Up    int
	Down  int
}

// Aggregator collects probe results from concurrent writers
type Aggregator struct {
	includeUnreachable bool

	results *mapsutil.SyncLockMap[string, Result]
	up      atomic.Int64
	down    atomic.Int64
}

// NewAggregator creates an aggregator. Unreachable results are dropped
// unless includeUnreachable is set.
func NewAggregator(includeUnreachable bool) *Aggregator {
	return &Aggregator{
		includeUnreachable: includeUnreachable,
		results:            mapsutil.NewSyncLockMap[string, Result](),
	}
}

// Add records one result
func (a *Aggregator) Add(result Result) {
	if result.Reachable {
		a.up.Add(1)
	} else {
		a.down.Add(1)
		if !a.includeUnreachable {
			return
		}
	}
	_ = a.results.Set(result.IP, result)
}

// Results returns the kept results sorted by the numeric value of their address
func (a *Aggregator) Results() []Result {
	var results []Result
	_ = a.results.Iterate(func(_ string, result Result) error {
		results = append(results, result)
		return nil
	})

	SortResults(results)
	return results
}

// Stats returns counts over every harvested result, including dropped ones
func (a *Aggregator) Stats() Stats {
	up, down := int(a.up.Load()), int(a.down.Load())
	return Stats{Total: up + down, Up: up, Down: down}
}

// SortResults orders results ascending by the 32-bit value of their address
func SortResults(results []Result) {
	slices.SortStableFunc(results, func(x, y Result) int {
		return common.CompareIPv4(x.IP, y.IP)
	})
}
