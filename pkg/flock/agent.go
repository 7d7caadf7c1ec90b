package flock

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// initialVelocityRange bounds each velocity component of a freshly spawned
// agent to [-5, 5].
const initialVelocityRange = 5.0

// Agent is a single boid: a position and a per-tick displacement vector.
// The velocity's magnitude is the heading speed and its direction the heading
// angle. Rendering concerns live entirely outside this type; a renderer reads
// Mark values from Flock.Snapshot instead.
type Agent struct {
	ID  string
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

// NewAgent creates an agent with a unique identity and zero state.
// Use Init or InitRandom to place it.
func NewAgent() *Agent {
	return &Agent{ID: fmt.Sprintf("boid-%s", uuid.NewString()[:8])}
}

// Init sets position and velocity directly. Used for deterministic agents.
func (a *Agent) Init(pos, vel geometry.Vector2D) {
	a.Pos = pos
	a.Vel = vel
}

// InitRandom places the agent uniformly inside the field with each velocity
// component drawn uniformly from [-initialVelocityRange, initialVelocityRange].
func (a *Agent) InitRandom(rng *rand.Rand, field Field) {
	a.Pos = geometry.Vector2D{
		X: rng.Float64() * field.Width,
		Y: rng.Float64() * field.Height,
	}
	a.Vel = geometry.Vector2D{
		X: (rng.Float64()*2 - 1) * initialVelocityRange,
		Y: (rng.Float64()*2 - 1) * initialVelocityRange,
	}
}

// Heading returns the angle of a forward-pointing marker for this agent.
// The -Pi/2 offset aligns an "up" facing sprite with the velocity vector.
func (a *Agent) Heading() float64 {
	return math.Atan2(a.Vel.Y, a.Vel.X) - math.Pi/2
}

// Update runs one simulation step for this agent against the given
// population: cohesion, separation and alignment in that exact order, then
// speed limiting, the soft boundary nudge, and finally Euler integration.
// Each rule reads the velocity already adjusted by the rules before it.
func (a *Agent) Update(neighbors []*Agent, field Field, cfg *Config) {
	a.cohere(neighbors, cfg)
	a.avoid(neighbors, cfg)
	a.align(neighbors, cfg)
	a.Vel = a.Vel.Limit(cfg.SpeedLimit)
	a.keepWithinBounds(field, cfg)
	a.Pos = a.Pos.Add(a.Vel)
}

// cohere steers toward the average position of agents within VisualRange.
// The agent counts itself as its own neighbor (distance to self is 0) unless
// cfg.ExcludeSelf is set.
func (a *Agent) cohere(neighbors []*Agent, cfg *Config) {
	var center geometry.Vector2D
	count := 0.0

	for _, other := range neighbors {
		if cfg.ExcludeSelf && other == a {
			continue
		}
		if a.Pos.DistanceTo(other.Pos) < cfg.VisualRange {
			center = center.Add(other.Pos)
			count++
		}
	}

	if count > 0 {
		center = center.Mul(1 / count)
		a.Vel = a.Vel.Add(center.Sub(a.Pos).Mul(cfg.CenteringFactor))
	}
}

// avoid accumulates the raw displacement away from every agent closer than
// MinDistance. Agents at the exact same position are skipped; the accumulated
// vector is not normalized.
func (a *Agent) avoid(neighbors []*Agent, cfg *Config) {
	var move geometry.Vector2D

	for _, other := range neighbors {
		if other.Pos.X == a.Pos.X && other.Pos.Y == a.Pos.Y {
			continue
		}
		if a.Pos.DistanceTo(other.Pos) < cfg.MinDistance {
			move = move.Add(a.Pos.Sub(other.Pos))
		}
	}

	a.Vel = a.Vel.Add(move.Mul(cfg.AvoidFactor))
}

// align steers the velocity toward the average velocity of agents within
// VisualRange. Same self-as-neighbor behavior as cohere.
func (a *Agent) align(neighbors []*Agent, cfg *Config) {
	var avg geometry.Vector2D
	count := 0.0

	for _, other := range neighbors {
		if cfg.ExcludeSelf && other == a {
			continue
		}
		if a.Pos.DistanceTo(other.Pos) < cfg.VisualRange {
			avg = avg.Add(other.Vel)
			count++
		}
	}

	if count > 0 {
		avg = avg.Mul(1 / count)
		a.Vel = a.Vel.Add(avg.Sub(a.Vel).Mul(cfg.MatchingFactor))
	}
}

// keepWithinBounds nudges the velocity back toward the field when the agent
// is inside the margin band, independently per axis. This is a soft turn, not
// a clamp: the agent may still leave the band this tick.
func (a *Agent) keepWithinBounds(field Field, cfg *Config) {
	if a.Pos.X < cfg.Margin {
		a.Vel.X += cfg.TurnFactor
	}
	if a.Pos.X > field.Width-cfg.Margin {
		a.Vel.X -= cfg.TurnFactor
	}
	if a.Pos.Y < cfg.Margin {
		a.Vel.Y += cfg.TurnFactor
	}
	if a.Pos.Y > field.Height-cfg.Margin {
		a.Vel.Y -= cfg.TurnFactor
	}
}
