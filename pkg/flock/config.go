package flock

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Config holds every tunable of a simulation run. All values are constants for
// the duration of a run; the field dimensions may be changed at any time via
// Flock.Resize.
type Config struct {
	// Field Dimensions
	FieldWidth  float64 `json:"fieldWidth"`
	FieldHeight float64 `json:"fieldHeight"`

	// Population
	PopulationCount int `json:"populationCount"`

	// Interaction Radii
	VisualRange float64 `json:"visualRange"` // Neighbor radius for cohesion & alignment
	MinDistance float64 `json:"minDistance"` // Personal space radius for separation

	// Rule strengths
	CenteringFactor float64 `json:"centeringFactor"` // Cohesion strength
	AvoidFactor     float64 `json:"avoidFactor"`     // Separation strength
	MatchingFactor  float64 `json:"matchingFactor"`  // Alignment strength
	TurnFactor      float64 `json:"turnFactor"`      // Edge turning strength

	// Physics
	SpeedLimit float64 `json:"speedLimit"` // Max velocity magnitude after an update
	Margin     float64 `json:"margin"`     // Boundary band width triggering the turn nudge

	// ExcludeSelf drops the agent itself from its own cohesion/alignment
	// averages. By default self counts as a neighbor (distance to self is 0),
	// which slightly biases both averages toward the agent's own state.
	ExcludeSelf bool `json:"excludeSelf"`
}

func DefaultConfig() *Config {
	return &Config{
		FieldWidth:      1000,
		FieldHeight:     800,
		PopulationCount: 100,
		VisualRange:     75.0,
		MinDistance:     20.0,
		CenteringFactor: 0.005,
		AvoidFactor:     0.05,
		MatchingFactor:  0.05,
		TurnFactor:      1.0,
		SpeedLimit:      15.0,
		Margin:          200.0,
	}
}

// Validate rejects configurations that would produce a degenerate simulation.
// Non-positive ranges (visualRange, minDistance) are deliberately NOT errors:
// they simply mean no neighbor ever qualifies for the corresponding rule.
func (c *Config) Validate() error {
	if c.PopulationCount <= 0 {
		return fmt.Errorf("%w: populationCount=%d", ErrInvalidPopulation, c.PopulationCount)
	}
	if c.FieldWidth <= 0 || c.FieldHeight <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidField, c.FieldWidth, c.FieldHeight)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
