package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// LoadBandwidthTrace reads a recorded bandwidth trace from a CSV file.
// The first column holds bandwidth in Mbps; further columns are ignored.
// A non-numeric first row is treated as a header. Every sample must be positive.
func LoadBandwidthTrace(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bandwidth trace: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseBandwidthTrace(f)
}

// ParseBandwidthTrace parses the CSV format accepted by LoadBandwidthTrace.
func ParseBandwidthTrace(r io.Reader) ([]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var samples []float64
	for first := true; ; first = false {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing bandwidth trace: %w", err)
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		line, _ := reader.FieldPos(0)
		v, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			if first {
				logrus.Debugf("bandwidth trace: skipping header %q", row[0])
				continue
			}
			return nil, fmt.Errorf("bandwidth trace line %d: %w", line, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return nil, fmt.Errorf("bandwidth trace line %d: bandwidth must be positive, got %g", line, v)
		}
		samples = append(samples, v)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("bandwidth trace has no samples")
	}
	return samples, nil
}
