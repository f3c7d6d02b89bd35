package mlfqsim

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Tid identifies a simulated process, stable for the run's lifetime.
type Tid int

// Time is simulated time, in abstract integer units. It only ever moves
// forward, and only when the scheduler loop advances it.
type Time int64

func (t Time) String() string {
	return fmt.Sprintf("%dT", int64(t))
}

type number interface {
	constraints.Integer | constraints.Float
}

// toFloats converts a slice of metric values for use with gonum's stat
// functions, which want []float64.
func toFloats[T number](vals []T) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return out
}
