package flock

import "errors"

var (
	// ErrNotPopulated is returned by Tick when Reset has never been called.
	ErrNotPopulated = errors.New("flock has no agents, call Reset first")

	// ErrInvalidPopulation rejects populationCount <= 0 at configuration time.
	ErrInvalidPopulation = errors.New("population count must be positive")

	// ErrInvalidField rejects non-positive field dimensions.
	ErrInvalidField = errors.New("field dimensions must be positive")
)
