package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/pingsweep"
)

// JSONResult is one line of JSON output
type JSONResult struct {
	ScanID    string    `json:"scan_id,omitempty"`
	IP        string    `json:"ip"`
	Status    string    `json:"status"`
	Reachable bool      `json:"reachable"`
	LatencyMs *int64    `json:"latency_ms,omitempty"`
	MAC       string    `json:"mac,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WriteJSON writes one JSON object per line for every result
func WriteJSON(w io.Writer, scanID string, results []pingsweep.Result) error {
	encoder := json.NewEncoder(w)
	now := time.Now().UTC()

	for _, result := range results {
		line := JSONResult{
			ScanID:    scanID,
			IP:        result.IP,
			Status:    result.Status(),
			Reachable: result.Reachable,
			MAC:       result.MAC,
			Timestamp: now,
		}
		if ms, ok := result.LatencyMs(); ok {
			line.LatencyMs = &ms
		}
		if err := encoder.Encode(line); err != nil {
			return fmt.Errorf("could not encode result for %s: %w", result.IP, err)
		}
	}
	return nil
}
