package flock

import (
	"math/rand"
	"time"
)

// Flock owns the agent population and drives one simulation step per Tick.
// It is deliberately single-threaded: the external frame loop calls Tick, and
// Tick runs to completion before returning. Agents are updated in place, in
// stable slice order, against the live collection — agents later in the pass
// see neighbors that already moved this tick. A frozen-snapshot model would
// change the emergent visuals.
type Flock struct {
	cfg    *Config
	field  Field
	agents []*Agent
	rng    *rand.Rand
}

// Mark is the read-only per-agent view handed to renderers. It is valid until
// the next Tick or Reset.
type Mark struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

// New validates the configuration and returns an empty flock. Callers must
// Reset before the first Tick.
func New(cfg *Config) (*Flock, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Flock{
		cfg:   cfg,
		field: FieldFromConfig(cfg),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// NewSeeded is New with an injected random source, for reproducible
// populations in tests and replays.
func NewSeeded(cfg *Config, seed int64) (*Flock, error) {
	f, err := New(cfg)
	if err != nil {
		return nil, err
	}
	f.rng = rand.New(rand.NewSource(seed))
	return f, nil
}

// Reset discards the current population and spawns exactly PopulationCount
// fresh randomized agents. It is the only transition into the populated state.
func (f *Flock) Reset() {
	agents := make([]*Agent, f.cfg.PopulationCount)
	for i := range agents {
		a := NewAgent()
		a.InitRandom(f.rng, f.field)
		agents[i] = a
	}
	f.agents = agents
}

// Tick advances simulated time by one discrete step: every agent updates its
// velocity and position from the full population. Returns ErrNotPopulated
// before the first Reset.
func (f *Flock) Tick() error {
	if len(f.agents) == 0 {
		return ErrNotPopulated
	}
	for _, a := range f.agents {
		a.Update(f.agents, f.field, f.cfg)
	}
	return nil
}

// Resize changes the field dimensions. The boundary rule observes the new
// bounds on the next Tick.
func (f *Flock) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidField
	}
	f.field = Field{Width: width, Height: height}
	return nil
}

// Field returns the current field value.
func (f *Flock) Field() Field {
	return f.field
}

// Len returns the current population size.
func (f *Flock) Len() int {
	return len(f.agents)
}

// Snapshot returns the renderer view of the population: identity, position
// and heading angle per agent, in stable agent order.
func (f *Flock) Snapshot() []Mark {
	marks := make([]Mark, len(f.agents))
	for i, a := range f.agents {
		marks[i] = Mark{
			ID:      a.ID,
			X:       a.Pos.X,
			Y:       a.Pos.Y,
			Heading: a.Heading(),
		}
	}
	return marks
}
