package flock

// Field is the bounded 2D area the agents move in. It is an explicit value
// passed into every update rather than shared package state, so a resize is
// only observed at the next tick.
type Field struct {
	Width  float64
	Height float64
}

// FieldFromConfig builds the initial field from a run configuration.
func FieldFromConfig(cfg *Config) Field {
	return Field{Width: cfg.FieldWidth, Height: cfg.FieldHeight}
}
