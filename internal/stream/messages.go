package stream

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"

// Control actions accepted from clients.
const (
	ActionReset  = "reset"
	ActionResize = "resize"
	ActionTune   = "tune"
)

// Control is an inbound client request to change the running simulation.
// Resize carries Width/Height; Tune carries the rule strengths to overwrite.
type Control struct {
	Action string  `json:"action"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Tune payload. Pointers so absent fields leave the running value alone.
	VisualRange     *float64 `json:"visualRange,omitempty"`
	MinDistance     *float64 `json:"minDistance,omitempty"`
	CenteringFactor *float64 `json:"centeringFactor,omitempty"`
	AvoidFactor     *float64 `json:"avoidFactor,omitempty"`
	MatchingFactor  *float64 `json:"matchingFactor,omitempty"`
	SpeedLimit      *float64 `json:"speedLimit,omitempty"`
	Margin          *float64 `json:"margin,omitempty"`
	TurnFactor      *float64 `json:"turnFactor,omitempty"`
}

// Apply overwrites the provided tuning fields on cfg.
func (c *Control) Apply(cfg *flock.Config) {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.VisualRange, c.VisualRange)
	set(&cfg.MinDistance, c.MinDistance)
	set(&cfg.CenteringFactor, c.CenteringFactor)
	set(&cfg.AvoidFactor, c.AvoidFactor)
	set(&cfg.MatchingFactor, c.MatchingFactor)
	set(&cfg.SpeedLimit, c.SpeedLimit)
	set(&cfg.Margin, c.Margin)
	set(&cfg.TurnFactor, c.TurnFactor)
}

// Frame is one outbound snapshot broadcast after a tick.
type Frame struct {
	Tick    uint64        `json:"tick"`
	Field   FieldSize     `json:"field"`
	Marks   []flock.Mark  `json:"marks"`
	Summary flock.Summary `json:"summary"`
}

// FieldSize mirrors the current simulation bounds for the client renderer.
type FieldSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
