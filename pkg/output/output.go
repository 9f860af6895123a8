// Package output renders sweep results as a terminal table, JSON lines or CSV.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/pingsweep"
	fileutil "github.com/projectdiscovery/utils/file"
)

// CSVHeader is the header row of CSV reports
var CSVHeader = []string{"IP", "Status", "LatencyMs"}

// createFile opens path for writing, creating missing parent folders
func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && !fileutil.FolderExists(dir) {
		if err := fileutil.CreateFolder(dir); err != nil {
			return nil, fmt.Errorf("could not create output folder %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create output file %s: %w", path, err)
	}
	return file, nil
}

// WriteCSVFile writes results to a CSV report at path
func WriteCSVFile(path string, results []pingsweep.Result) (err error) {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close output file %s: %w", path, closeErr)
		}
	}()
	return WriteCSV(file, results)
}

// ReadCSVFile parses a CSV report written by WriteCSVFile
func ReadCSVFile(path string) ([]pingsweep.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return ReadCSV(file)
}
