// Package export writes simulation results to files: per-step CSV
// trajectories and a Prometheus text-format summary.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abr-sim/abr-sim/sim"
	"github.com/abr-sim/abr-sim/sim/experiment"
)

var csvHeader = []string{
	"step",
	"bandwidth_mbps",
	"bitrate_mbps",
	"download_time_s",
	"buffer_s",
	"stalled",
	"strategy",
}

// CSVRecorder writes one row per StepRecord. Attach it as Simulator.Observer
// to stream a run to disk.
type CSVRecorder struct {
	f *os.File
	w *csv.Writer
}

var _ sim.StepObserver = (*CSVRecorder)(nil)

// NewCSVRecorder creates path (and its parent directories) and writes the header.
func NewCSVRecorder(path string) (*CSVRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &CSVRecorder{f: f, w: w}, nil
}

// OnStep appends rec as a row.
func (r *CSVRecorder) OnStep(rec sim.StepRecord) error {
	return r.w.Write([]string{
		strconv.Itoa(rec.Step),
		ff(rec.Bandwidth),
		ff(rec.Bitrate),
		ff(rec.DownloadTime),
		ff(rec.Occupancy),
		strconv.FormatBool(rec.Stalled),
		rec.Strategy,
	})
}

// Close flushes buffered rows and closes the file.
func (r *CSVRecorder) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		_ = r.f.Close()
		return err
	}
	return r.f.Close()
}

// WriteRecords writes records to a new CSV file at path.
func WriteRecords(path string, records []sim.StepRecord) error {
	rec, err := NewCSVRecorder(path)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := rec.OnStep(r); err != nil {
			_ = rec.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return rec.Close()
}

// WriteResultsCSV writes one trajectory file per result into dir, named
// <scenario>__<strategy>.csv, and returns the written paths in result order.
func WriteResultsCSV(dir string, results []experiment.Result) ([]string, error) {
	paths := make([]string, 0, len(results))
	for _, res := range results {
		path := filepath.Join(dir, ResultFileName(res))
		if err := WriteRecords(path, res.Records); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ResultFileName returns the CSV file name for a result, with characters
// outside [A-Za-z0-9_-] replaced by '_'.
func ResultFileName(res experiment.Result) string {
	return sanitize(res.Scenario) + "__" + sanitize(res.Strategy) + ".csv"
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

func ff(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
