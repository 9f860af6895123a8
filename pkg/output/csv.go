package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/pingsweep"
)

// WriteCSV writes the header and one row per result. Unreachable hosts have
// an empty latency cell.
func WriteCSV(w io.Writer, results []pingsweep.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("could not write csv header: %w", err)
	}

	for _, result := range results {
		latency := ""
		if ms, ok := result.LatencyMs(); ok {
			latency = strconv.FormatInt(ms, 10)
		}
		if err := writer.Write([]string{result.IP, result.Status(), latency}); err != nil {
			return fmt.Errorf("could not write csv row for %s: %w", result.IP, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("could not flush csv: %w", err)
	}
	return nil
}

// ReadCSV parses rows in the format produced by WriteCSV. Latency is
// restored at millisecond precision.
func ReadCSV(r io.Reader) ([]pingsweep.Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(CSVHeader)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("could not read csv header: %w", err)
	}
	if !slices.Equal(header, CSVHeader) {
		return nil, fmt.Errorf("unexpected csv header %v", header)
	}

	var results []pingsweep.Result
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read csv row: %w", err)
		}

		result, err := parseRecord(record)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func parseRecord(record []string) (pingsweep.Result, error) {
	ip, status, latency := record[0], record[1], record[2]

	switch status {
	case pingsweep.StatusDown:
		if latency != "" {
			return pingsweep.Result{}, fmt.Errorf("unreachable host %s has latency %q", ip, latency)
		}
		return pingsweep.Down(ip), nil
	case pingsweep.StatusUp:
		ms, err := strconv.ParseInt(latency, 10, 64)
		if err != nil || ms < 0 {
			return pingsweep.Result{}, fmt.Errorf("invalid latency %q for %s", latency, ip)
		}
		return pingsweep.Up(ip, time.Duration(ms)*time.Millisecond), nil
	default:
		return pingsweep.Result{}, fmt.Errorf("invalid status %q for %s", status, ip)
	}
}
