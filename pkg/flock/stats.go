package flock

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates per-tick telemetry about the population. It is computed
// on demand and never cached; call it after a Tick for fresh numbers.
type Summary struct {
	Population  int               `json:"population"`
	MeanSpeed   float64           `json:"meanSpeed"`
	SpeedStdDev float64           `json:"speedStdDev"`
	Center      geometry.Vector2D `json:"center"`
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d speed=%.2f±%.2f center=%s",
		s.Population, s.MeanSpeed, s.SpeedStdDev, s.Center)
}

// Summary computes population statistics: mean and standard deviation of the
// agent speeds and the population center of mass.
func (f *Flock) Summary() Summary {
	n := len(f.agents)
	if n == 0 {
		return Summary{}
	}

	speeds := make([]float64, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, a := range f.agents {
		speeds[i] = a.Vel.Len()
		xs[i] = a.Pos.X
		ys[i] = a.Pos.Y
	}

	mean, stddev := stat.MeanStdDev(speeds, nil)
	if n < 2 {
		stddev = 0
	}

	return Summary{
		Population:  n,
		MeanSpeed:   mean,
		SpeedStdDev: stddev,
		Center: geometry.Vector2D{
			X: stat.Mean(xs, nil),
			Y: stat.Mean(ys, nil),
		},
	}
}
