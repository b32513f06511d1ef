package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Bandwidth patterns accepted in ScenarioSpec.Pattern.
const (
	PatternConstant   = "constant"
	PatternSinusoidal = "sinusoidal"
	PatternUniform    = "uniform"
	PatternSteps      = "steps"
	PatternReplay     = "replay"
)

// ScenarioSpec describes one bandwidth sequence, loadable from YAML.
// Only the fields relevant to Pattern are read.
type ScenarioSpec struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Ticks   int    `yaml:"ticks,omitempty"` // number of samples; replay uses the file length when 0

	Value     float64   `yaml:"value,omitempty"`     // constant
	Mean      float64   `yaml:"mean,omitempty"`      // sinusoidal
	Amplitude float64   `yaml:"amplitude,omitempty"` // sinusoidal
	Min       float64   `yaml:"min,omitempty"`       // uniform, inclusive
	Max       float64   `yaml:"max,omitempty"`       // uniform, exclusive
	Seed      int64     `yaml:"seed,omitempty"`      // uniform
	Levels    []float64 `yaml:"levels,omitempty"`    // steps: each level held for Hold ticks, cycling
	Hold      int       `yaml:"hold,omitempty"`      // steps
	File      string    `yaml:"file,omitempty"`      // replay: CSV with bandwidth in the first column
}

// ScenarioFile is the top-level YAML document of a scenario list.
type ScenarioFile struct {
	Scenarios []ScenarioSpec `yaml:"scenarios"`
}

var validPatterns = map[string]bool{
	PatternConstant: true, PatternSinusoidal: true, PatternUniform: true, PatternSteps: true, PatternReplay: true,
}

// IsValidPattern reports whether name is a recognized bandwidth pattern.
func IsValidPattern(name string) bool {
	return validPatterns[name]
}

// LoadScenarioFile reads and parses a YAML scenario list.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenarioFile(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var f ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	return &f, nil
}

// Validate checks the pattern and its parameters.
// Every generated sample must be positive, so ranges are checked up front.
func (s *ScenarioSpec) Validate() error {
	prefix := fmt.Sprintf("scenario %q", s.Name)
	if s.Name == "" {
		return fmt.Errorf("scenario name must not be empty")
	}
	if !validPatterns[s.Pattern] {
		return fmt.Errorf("%s: unknown pattern %q; valid: constant, sinusoidal, uniform, steps, replay", prefix, s.Pattern)
	}
	if s.Ticks < 0 || (s.Ticks == 0 && s.Pattern != PatternReplay) {
		return fmt.Errorf("%s: ticks must be positive, got %d", prefix, s.Ticks)
	}
	switch s.Pattern {
	case PatternConstant:
		return validateFinitePositive(prefix+".value", s.Value)
	case PatternSinusoidal:
		if err := validateFinitePositive(prefix+".mean", s.Mean); err != nil {
			return err
		}
		if math.IsNaN(s.Amplitude) || math.IsInf(s.Amplitude, 0) || s.Amplitude < 0 {
			return fmt.Errorf("%s.amplitude must be a finite non-negative number, got %f", prefix, s.Amplitude)
		}
		if s.Amplitude >= s.Mean {
			return fmt.Errorf("%s: amplitude %f must be below mean %f to keep bandwidth positive", prefix, s.Amplitude, s.Mean)
		}
	case PatternUniform:
		if err := validateFinitePositive(prefix+".min", s.Min); err != nil {
			return err
		}
		if err := validateFinitePositive(prefix+".max", s.Max); err != nil {
			return err
		}
		if s.Min >= s.Max {
			return fmt.Errorf("%s: min %f must be below max %f", prefix, s.Min, s.Max)
		}
	case PatternSteps:
		if len(s.Levels) == 0 {
			return fmt.Errorf("%s: steps pattern needs at least one level", prefix)
		}
		for i, l := range s.Levels {
			if err := validateFinitePositive(fmt.Sprintf("%s.levels[%d]", prefix, i), l); err != nil {
				return err
			}
		}
		if s.Hold < 1 {
			return fmt.Errorf("%s: hold must be >= 1, got %d", prefix, s.Hold)
		}
	case PatternReplay:
		if s.File == "" {
			return fmt.Errorf("%s: replay pattern needs a file", prefix)
		}
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
