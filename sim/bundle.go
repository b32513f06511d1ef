package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Strategy parameter defaults applied when a StrategyConfig field is unset.
const (
	DefaultAlpha = 1.0
	DefaultEta   = 2.0
	DefaultBK1   = 2.0
	DefaultBK2   = 6.0
)

// StrategyConfig describes one strategy instance, loadable from YAML.
// Nil pointer fields mean "not set in YAML" and fall back to the package defaults.
type StrategyConfig struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label,omitempty"` // display name in reports; defaults to Name

	// utility
	Alpha *float64 `yaml:"alpha,omitempty"`
	// throughput, pd
	WindowSize *int `yaml:"window_size,omitempty"`
	// pd
	Eta             *float64 `yaml:"eta,omitempty"`
	BK1             *float64 `yaml:"bk1,omitempty"`
	BK2             *float64 `yaml:"bk2,omitempty"`
	StrictFirstStep bool     `yaml:"strict_first_step,omitempty"`
	// selector (its delegates use the utility, throughput and pd fields above)
	CriticalBuffer       *float64 `yaml:"critical_buffer,omitempty"`
	FluctuationThreshold *float64 `yaml:"fluctuation_threshold,omitempty"`
}

// StrategyBundle is a named list of strategies, loadable from a YAML file.
type StrategyBundle struct {
	Strategies []StrategyConfig `yaml:"strategies"`
}

// ValidStrategies is the set of recognized strategy names.
// Shared by Validate() and NewStrategy() to avoid duplication.
var ValidStrategies = map[string]bool{StrategyUtility: true, StrategyThroughput: true, StrategyPD: true, StrategySelector: true}

// IsValidStrategy reports whether name is a recognized strategy name.
func IsValidStrategy(name string) bool { return ValidStrategies[name] }

// StrategyNames returns the recognized strategy names in a stable order.
func StrategyNames() []string {
	return []string{StrategyUtility, StrategyThroughput, StrategyPD, StrategySelector}
}

// DisplayName returns Label, or Name when no label is set.
func (c StrategyConfig) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

func floatOr(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

// Validate checks the strategy name and parameter ranges.
func (c StrategyConfig) Validate() error {
	if !IsValidStrategy(c.Name) {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Name)
	}
	if c.WindowSize != nil && *c.WindowSize < 1 {
		return fmt.Errorf("%w: window_size must be >= 1, got %d", ErrInvalidConfig, *c.WindowSize)
	}
	if c.Eta != nil && *c.Eta <= 0 {
		return fmt.Errorf("%w: eta must be positive, got %f", ErrInvalidConfig, *c.Eta)
	}
	bk1, bk2 := floatOr(c.BK1, DefaultBK1), floatOr(c.BK2, DefaultBK2)
	if bk1 < 0 || bk1 >= bk2 {
		return fmt.Errorf("%w: need 0 <= bk1 < bk2, got bk1=%f bk2=%f", ErrInvalidConfig, bk1, bk2)
	}
	if c.CriticalBuffer != nil && *c.CriticalBuffer < 0 {
		return fmt.Errorf("%w: critical_buffer must be non-negative, got %f", ErrInvalidConfig, *c.CriticalBuffer)
	}
	if c.FluctuationThreshold != nil && *c.FluctuationThreshold < 0 {
		return fmt.Errorf("%w: fluctuation_threshold must be non-negative, got %f", ErrInvalidConfig, *c.FluctuationThreshold)
	}
	return nil
}

// Validate checks every strategy in the bundle and rejects duplicate display names.
func (b *StrategyBundle) Validate() error {
	if len(b.Strategies) == 0 {
		return fmt.Errorf("%w: no strategies", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(b.Strategies))
	for i, c := range b.Strategies {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("strategies[%d]: %w", i, err)
		}
		if seen[c.DisplayName()] {
			return fmt.Errorf("%w: duplicate strategy label %q", ErrInvalidConfig, c.DisplayName())
		}
		seen[c.DisplayName()] = true
	}
	return nil
}

// NewStrategy builds a fresh strategy instance. segmentDuration feeds the PD controller.
func NewStrategy(c StrategyConfig, segmentDuration float64) (DecisionStrategy, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Name {
	case StrategyUtility:
		return NewUtilityStrategy(floatOr(c.Alpha, DefaultAlpha)), nil
	case StrategyThroughput:
		t, err := NewThroughputStrategy(intOr(c.WindowSize, DefaultWindowSize))
		if err != nil {
			return nil, err
		}
		return t, nil
	case StrategyPD:
		pd, err := NewPDStrategy(c.pdConfig(segmentDuration))
		if err != nil {
			return nil, err
		}
		return pd, nil
	case StrategySelector:
		utility := NewUtilityStrategy(floatOr(c.Alpha, DefaultAlpha))
		throughput, err := NewThroughputStrategy(intOr(c.WindowSize, DefaultWindowSize))
		if err != nil {
			return nil, err
		}
		pd, err := NewPDStrategy(c.pdConfig(segmentDuration))
		if err != nil {
			return nil, err
		}
		sel, err := NewSelectorStrategy(SelectorConfig{
			CriticalBuffer:       floatOr(c.CriticalBuffer, DefaultCriticalBuffer),
			FluctuationThreshold: floatOr(c.FluctuationThreshold, DefaultFluctuationThreshold),
		}, utility, throughput, pd)
		if err != nil {
			return nil, err
		}
		return sel, nil
	default:
		panic(fmt.Sprintf("unhandled strategy %q", c.Name))
	}
}

func (c StrategyConfig) pdConfig(segmentDuration float64) PDConfig {
	return PDConfig{
		SegmentDuration: segmentDuration,
		Eta:             floatOr(c.Eta, DefaultEta),
		BK1:             floatOr(c.BK1, DefaultBK1),
		BK2:             floatOr(c.BK2, DefaultBK2),
		WindowSize:      intOr(c.WindowSize, DefaultWindowSize),
		StrictFirstStep: c.StrictFirstStep,
	}
}

// LoadStrategyBundle reads and parses a YAML strategy bundle.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadStrategyBundle(path string) (*StrategyBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading strategy config: %w", err)
	}
	var bundle StrategyBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing strategy config: %w", err)
	}
	return &bundle, nil
}
