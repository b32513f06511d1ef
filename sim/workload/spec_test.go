package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    ScenarioSpec
		wantErr string
	}{
		{"constant ok", ScenarioSpec{Name: "c", Pattern: PatternConstant, Ticks: 3, Value: 5}, ""},
		{"empty name", ScenarioSpec{Pattern: PatternConstant, Ticks: 3, Value: 5}, "name must not be empty"},
		{"unknown pattern", ScenarioSpec{Name: "x", Pattern: "square", Ticks: 3}, "unknown pattern"},
		{"zero ticks", ScenarioSpec{Name: "c", Pattern: PatternConstant, Value: 5}, "ticks must be positive"},
		{"zero value", ScenarioSpec{Name: "c", Pattern: PatternConstant, Ticks: 3}, "value must be positive"},
		{"amplitude reaches zero", ScenarioSpec{Name: "s", Pattern: PatternSinusoidal, Ticks: 3, Mean: 2, Amplitude: 2}, "must be below mean"},
		{"negative amplitude", ScenarioSpec{Name: "s", Pattern: PatternSinusoidal, Ticks: 3, Mean: 2, Amplitude: -1}, "non-negative"},
		{"uniform inverted", ScenarioSpec{Name: "u", Pattern: PatternUniform, Ticks: 3, Min: 8, Max: 2}, "must be below max"},
		{"uniform zero min", ScenarioSpec{Name: "u", Pattern: PatternUniform, Ticks: 3, Min: 0, Max: 2}, "min must be positive"},
		{"steps without levels", ScenarioSpec{Name: "st", Pattern: PatternSteps, Ticks: 3, Hold: 1}, "at least one level"},
		{"steps zero hold", ScenarioSpec{Name: "st", Pattern: PatternSteps, Ticks: 3, Levels: []float64{1}}, "hold must be >= 1"},
		{"replay without file", ScenarioSpec{Name: "r", Pattern: PatternReplay}, "needs a file"},
		{"replay without ticks ok", ScenarioSpec{Name: "r", Pattern: PatternReplay, File: "bw.csv"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarioFile_StrictParsing(t *testing.T) {
	dir := t.TempDir()

	// GIVEN a valid scenario file
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
scenarios:
  - name: steady
    pattern: constant
    ticks: 4
    value: 3.5
  - name: wave
    pattern: sinusoidal
    ticks: 10
    mean: 5
    amplitude: 2
`), 0o644))

	// WHEN loaded
	f, err := LoadScenarioFile(good)

	// THEN both scenarios are parsed with their parameters
	require.NoError(t, err)
	require.Len(t, f.Scenarios, 2)
	assert.Equal(t, "steady", f.Scenarios[0].Name)
	assert.Equal(t, 3.5, f.Scenarios[0].Value)
	assert.Equal(t, 2.0, f.Scenarios[1].Amplitude)

	// GIVEN a file with a misspelled key
	typo := filepath.Join(dir, "typo.yaml")
	require.NoError(t, os.WriteFile(typo, []byte(`
scenarios:
  - name: steady
    pattern: constant
    tiks: 4
`), 0o644))

	// THEN loading fails
	_, err = LoadScenarioFile(typo)
	assert.Error(t, err)
}
