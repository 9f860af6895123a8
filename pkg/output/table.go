package output

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/pingsweep"
)

// WriteTable prints results as an aligned table. The status column is last
// so colour codes do not disturb the alignment. A MAC column is added when
// any result carries one.
func WriteTable(w io.Writer, results []pingsweep.Result, noColor bool) error {
	au := aurora.New(aurora.WithColors(!noColor))
	withMAC := slices.ContainsFunc(results, func(r pingsweep.Result) bool { return r.MAC != "" })

	header := []string{"IP", "LATENCY"}
	if withMAC {
		header = append(header, "MAC")
	}
	header = append(header, "STATUS")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, result := range results {
		status := au.Red(result.Status())
		latency := "-"
		if ms, ok := result.LatencyMs(); ok {
			status = au.Green(result.Status())
			latency = strconv.FormatInt(ms, 10) + "ms"
		}

		row := []string{result.IP, latency}
		if withMAC {
			mac := result.MAC
			if mac == "" {
				mac = "-"
			}
			row = append(row, mac)
		}
		row = append(row, status.String())
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("could not write table: %w", err)
	}
	return nil
}
