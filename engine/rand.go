package engine

import (
	"math/rand"
	"time"
)

// Source supplies uniform draws in [0, 1). Every random choice in the
// simulator and the tie-break fallback flows through a Source, so tests can
// script exact outcomes.
type Source interface {
	Float64() float64
}

type mathSource struct {
	r *rand.Rand
}

func (s mathSource) Float64() float64 {
	return s.r.Float64()
}

// NewSource returns a math/rand-backed Source seeded from the clock.
func NewSource() Source {
	return mathSource{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededSource returns a reproducible Source for tests and replays.
func NewSeededSource(seed int64) Source {
	return mathSource{r: rand.New(rand.NewSource(seed))}
}

// randi draws a uniform integer in [min, max].
func randi(rng Source, min, max int) int {
	return min + int(rng.Float64()*float64(max-min+1))
}

// chance reports one biased coin toss.
func chance(rng Source, p float64) bool {
	return rng.Float64() < p
}
