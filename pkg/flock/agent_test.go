package flock

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wideOpenConfig returns a config where the boundary rule never fires and the
// speed limit never engages, so individual rules can be isolated.
func wideOpenConfig() *Config {
	return &Config{
		FieldWidth:      10000,
		FieldHeight:     10000,
		PopulationCount: 1,
		VisualRange:     75,
		MinDistance:     20,
		SpeedLimit:      1000,
		Margin:          0,
		TurnFactor:      1,
	}
}

func TestAgent_CohesionPullsTowardCenter(t *testing.T) {
	cfg := wideOpenConfig()
	cfg.CenteringFactor = 0.005

	a := NewAgent()
	a.Init(geometry.New(0, 0), geometry.New(0, 0))
	b := NewAgent()
	b.Init(geometry.New(50, 0), geometry.New(0, 0))

	a.cohere([]*Agent{a, b}, cfg)

	// Center of mass is (25, 0) with self included, so the pull is +x.
	assert.Greater(t, a.Vel.X, 0.0)
	assert.Zero(t, a.Vel.Y)
}

func TestAgent_CohesionSelfBias(t *testing.T) {
	// Self counts as a neighbor, halving the pull compared to excludeSelf.
	cfg := wideOpenConfig()
	cfg.CenteringFactor = 0.005

	withSelf := NewAgent()
	withSelf.Init(geometry.New(0, 0), geometry.New(0, 0))
	other := NewAgent()
	other.Init(geometry.New(50, 0), geometry.New(0, 0))
	withSelf.cohere([]*Agent{withSelf, other}, cfg)
	// center = (0+50)/2 = 25 -> pull 25*0.005
	assert.InDelta(t, 25*0.005, withSelf.Vel.X, 1e-12)

	cfg.ExcludeSelf = true
	withoutSelf := NewAgent()
	withoutSelf.Init(geometry.New(0, 0), geometry.New(0, 0))
	withoutSelf.cohere([]*Agent{withoutSelf, other}, cfg)
	// center = 50 -> pull 50*0.005
	assert.InDelta(t, 50*0.005, withoutSelf.Vel.X, 1e-12)
}

func TestAgent_SeparationPushesApart(t *testing.T) {
	cfg := wideOpenConfig()
	cfg.AvoidFactor = 0.05

	a := NewAgent()
	a.Init(geometry.New(0, 0), geometry.New(0, 0))
	b := NewAgent()
	b.Init(geometry.New(10, 0), geometry.New(0, 0))

	a.avoid([]*Agent{a, b}, cfg)
	b.avoid([]*Agent{a, b}, cfg)

	// Accumulated displacement is raw (self - other), scaled by avoidFactor.
	assert.InDelta(t, -10*0.05, a.Vel.X, 1e-12)
	assert.InDelta(t, 10*0.05, b.Vel.X, 1e-12)
}

func TestAgent_SeparationSkipsCoincidentAgents(t *testing.T) {
	cfg := wideOpenConfig()
	cfg.AvoidFactor = 0.05

	a := NewAgent()
	a.Init(geometry.New(5, 5), geometry.New(0, 0))
	twin := NewAgent()
	twin.Init(geometry.New(5, 5), geometry.New(3, 3))

	a.avoid([]*Agent{a, twin}, cfg)

	assert.Zero(t, a.Vel.X)
	assert.Zero(t, a.Vel.Y)
}

func TestAgent_SeparationIgnoresFarAgents(t *testing.T) {
	cfg := wideOpenConfig()
	cfg.AvoidFactor = 1.0

	a := NewAgent()
	a.Init(geometry.New(0, 0), geometry.New(1, 0))
	far := NewAgent()
	far.Init(geometry.New(100, 0), geometry.New(0, 0))

	a.avoid([]*Agent{a, far}, cfg)

	assert.Equal(t, 1.0, a.Vel.X)
	assert.Zero(t, a.Vel.Y)
}

func TestAgent_AlignmentMatchesAverageVelocity(t *testing.T) {
	cfg := wideOpenConfig()
	cfg.MatchingFactor = 0.05

	a := NewAgent()
	a.Init(geometry.New(0, 0), geometry.New(0, 0))
	b := NewAgent()
	b.Init(geometry.New(5, 0), geometry.New(1, 0))

	a.align([]*Agent{a, b}, cfg)

	// avg = (0 + 1)/2 = 0.5, delta = 0.5 * matchingFactor
	assert.InDelta(t, 0.5*0.05, a.Vel.X, 1e-12)
}

func TestAgent_SpeedLimit(t *testing.T) {
	// Scenario C: velocity (20, 0) against speedLimit 15 rescales to exactly
	// magnitude 15 with direction unchanged.
	cfg := wideOpenConfig()
	cfg.SpeedLimit = 15

	a := NewAgent()
	a.Init(geometry.New(5000, 5000), geometry.New(20, 0))

	a.Update([]*Agent{a}, FieldFromConfig(cfg), cfg)

	assert.InDelta(t, 15.0, a.Vel.Len(), 1e-9)
	assert.InDelta(t, 15.0, a.Vel.X, 1e-9)
	assert.InDelta(t, 0.0, a.Vel.Y, 1e-9)
}

func TestAgent_BoundaryNudgeSigns(t *testing.T) {
	cfg := &Config{
		FieldWidth:      1000,
		FieldHeight:     800,
		PopulationCount: 1,
		Margin:          100,
		TurnFactor:      0.5,
		SpeedLimit:      1000,
	}
	field := FieldFromConfig(cfg)

	tests := []struct {
		name   string
		pos    geometry.Vector2D
		wantDx float64
		wantDy float64
	}{
		{"Left of band", geometry.New(99, 400), 0.5, 0},
		{"Right of band", geometry.New(901, 400), -0.5, 0},
		{"Above band", geometry.New(500, 99), 0, 0.5},
		{"Below band", geometry.New(500, 701), 0, -0.5},
		{"Both axes low", geometry.New(50, 50), 0.5, 0.5},
		{"Inside band", geometry.New(500, 400), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAgent()
			a.Init(tt.pos, geometry.New(0, 0))
			a.keepWithinBounds(field, cfg)
			assert.Equal(t, tt.wantDx, a.Vel.X)
			assert.Equal(t, tt.wantDy, a.Vel.Y)
		})
	}
}

func TestAgent_ZeroNeighborStability(t *testing.T) {
	// Scenario B: a lone agent far from all boundaries moves by exactly its
	// velocity. Self-as-neighbor contributes nothing: the center of mass is
	// its own position and the average velocity its own velocity.
	cfg := wideOpenConfig()
	cfg.CenteringFactor = 0.005
	cfg.AvoidFactor = 0.05
	cfg.MatchingFactor = 0.05
	cfg.Margin = 100
	field := FieldFromConfig(cfg)

	a := NewAgent()
	a.Init(geometry.New(5000, 5000), geometry.New(2, 3))

	a.Update([]*Agent{a}, field, cfg)

	assert.Equal(t, geometry.New(2, 3), a.Vel)
	assert.Equal(t, geometry.New(5002, 5003), a.Pos)
}

func TestAgent_DegenerateVisualRange(t *testing.T) {
	// visualRange <= 0 is defined, not an error: no neighbor ever qualifies,
	// not even self.
	cfg := wideOpenConfig()
	cfg.VisualRange = 0
	cfg.CenteringFactor = 1
	cfg.MatchingFactor = 1

	a := NewAgent()
	a.Init(geometry.New(0, 0), geometry.New(1, 1))
	b := NewAgent()
	b.Init(geometry.New(1, 1), geometry.New(-1, -1))

	a.cohere([]*Agent{a, b}, cfg)
	a.align([]*Agent{a, b}, cfg)

	assert.Equal(t, geometry.New(1, 1), a.Vel)
}

func TestAgent_UpdateIsDeterministic(t *testing.T) {
	cfg := wideOpenConfig()
	cfg.CenteringFactor = 0.005
	cfg.AvoidFactor = 0.05
	cfg.MatchingFactor = 0.05
	field := FieldFromConfig(cfg)

	run := func() (geometry.Vector2D, geometry.Vector2D) {
		a := NewAgent()
		a.Init(geometry.New(0, 0), geometry.New(1, 0))
		b := NewAgent()
		b.Init(geometry.New(10, 0), geometry.New(-1, 0))
		a.Update([]*Agent{a, b}, field, cfg)
		return a.Pos, a.Vel
	}

	pos1, vel1 := run()
	pos2, vel2 := run()

	assert.Equal(t, pos1, pos2)
	assert.Equal(t, vel1, vel2)
}

func TestAgent_ScenarioTwoApproaching(t *testing.T) {
	// Scenario A: agents at (0,0) v(1,0) and (10,0) v(-1,0). Cohesion pulls
	// both toward (5,0), alignment pulls velocities toward the average, and
	// separation engages (distance 10 < minDistance 20) pushing apart on x.
	cfg := wideOpenConfig()
	cfg.CenteringFactor = 0.005
	cfg.MatchingFactor = 0.05
	cfg.AvoidFactor = 0.05

	a := NewAgent()
	a.Init(geometry.New(0, 0), geometry.New(1, 0))
	b := NewAgent()
	b.Init(geometry.New(10, 0), geometry.New(-1, 0))
	population := []*Agent{a, b}
	field := FieldFromConfig(cfg)

	a.Update(population, field, cfg)
	b.Update(population, field, cfg)

	// Separation dominates at this range: a is pushed left of its prior
	// course, b right of its prior course.
	assert.Less(t, a.Vel.X, 1.0)
	assert.Greater(t, b.Vel.X, -1.0)
	// Everything stays on the x axis.
	assert.Zero(t, a.Vel.Y)
	assert.Zero(t, b.Vel.Y)
	// Alignment draws both speeds toward the (near-zero) average.
	assert.Less(t, math.Abs(a.Vel.X+b.Vel.X), 2.0)
}

func TestAgent_HeadingConvention(t *testing.T) {
	a := NewAgent()
	a.Init(geometry.New(0, 0), geometry.New(0, 1))

	// atan2(1, 0) - Pi/2 = 0 for a marker drawn pointing "up".
	require.InDelta(t, 0.0, a.Heading(), 1e-12)

	a.Vel = geometry.New(1, 0)
	require.InDelta(t, -math.Pi/2, a.Heading(), 1e-12)
}

func TestAgent_InitRandomBounds(t *testing.T) {
	cfg := DefaultConfig()
	field := FieldFromConfig(cfg)
	f, err := NewSeeded(cfg, 42)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		a := NewAgent()
		a.InitRandom(f.rng, field)

		assert.GreaterOrEqual(t, a.Pos.X, 0.0)
		assert.Less(t, a.Pos.X, field.Width)
		assert.GreaterOrEqual(t, a.Pos.Y, 0.0)
		assert.Less(t, a.Pos.Y, field.Height)
		assert.LessOrEqual(t, math.Abs(a.Vel.X), initialVelocityRange)
		assert.LessOrEqual(t, math.Abs(a.Vel.Y), initialVelocityRange)
	}
}
