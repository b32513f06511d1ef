package workload

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBandwidthTrace(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		wantErr string
	}{
		{"no header", "1.5\n2\n", []float64{1.5, 2}, ""},
		{"header and extra columns", "mbps,ts\n1,0\n2,1\n", []float64{1, 2}, ""},
		{"comments and blank lines", "# recorded\n3\n\n4\n", []float64{3, 4}, ""},
		{"non-numeric body", "1\nfast\n", nil, "line 2"},
		{"zero sample", "1\n0\n", nil, "must be positive"},
		{"negative sample", "-2\n", nil, "must be positive"},
		{"header only", "mbps\n", nil, "no samples"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBandwidthTrace(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadBandwidthTrace_MissingFile(t *testing.T) {
	_, err := LoadBandwidthTrace(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
