package mlfqsim

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/markphelps/optional"
)

const (
	// quanta below this would give I/O-bound procs a zero-length slice and
	// stall the clock
	minQuantum = 5
)

// Params configures one simulation run. Either BaseQuantum (levels get
// base<<k) or an explicit Quanta schedule must be given.
type Params struct {
	Levels        int            `json:"levels"`
	BaseQuantum   Time           `json:"base_quantum"`
	Quanta        []Time         `json:"quanta,omitempty"`
	BoostInterval Time           `json:"boost_interval"`
	IODelay       Time           `json:"io_delay"`
	MaxTime       optional.Int64 `json:"max_time"`
}

// DefaultParams mirrors the reference configuration: three levels with
// quanta 10/20/40, boost every 50 units, 10 units of simulated I/O.
func DefaultParams() Params {
	return Params{
		Levels:        3,
		BaseQuantum:   10,
		BoostInterval: 50,
		IODelay:       10,
	}
}

// LoadParams reads a Params JSON file.
func LoadParams(filePath string) (Params, error) {
	configFile, err := os.Open(filePath)
	if err != nil {
		return Params{}, fmt.Errorf("opening config file: %w", err)
	}
	defer func() {
		_ = configFile.Close()
	}()

	params := DefaultParams()
	if err := json.NewDecoder(configFile).Decode(&params); err != nil {
		return Params{}, fmt.Errorf("decoding config file %s: %w", filePath, err)
	}
	return params, nil
}

func (p Params) validate() error {
	if p.Levels < 1 {
		return fmt.Errorf("%w: need at least one level, got %d", ErrInvalidConfig, p.Levels)
	}
	if len(p.Quanta) > 0 {
		if len(p.Quanta) != p.Levels {
			return fmt.Errorf("%w: %d quanta for %d levels", ErrInvalidConfig, len(p.Quanta), p.Levels)
		}
		for i, q := range p.Quanta {
			if q < minQuantum {
				return fmt.Errorf("%w: quantum %v at level %d below minimum %d", ErrInvalidConfig, q, i, minQuantum)
			}
		}
	} else if p.BaseQuantum < minQuantum {
		return fmt.Errorf("%w: base quantum %v below minimum %d", ErrInvalidConfig, p.BaseQuantum, minQuantum)
	}
	if p.BoostInterval <= 0 {
		return fmt.Errorf("%w: non-positive boost interval %v", ErrInvalidConfig, p.BoostInterval)
	}
	if p.IODelay < 0 {
		return fmt.Errorf("%w: negative io delay %v", ErrInvalidConfig, p.IODelay)
	}
	if max, err := p.MaxTime.Get(); err == nil && max <= 0 {
		return fmt.Errorf("%w: non-positive max time %d", ErrInvalidConfig, max)
	}
	return nil
}

// quantaSchedule returns the per-level quanta, deriving the geometric
// schedule from BaseQuantum when no explicit one was given.
func (p Params) quantaSchedule() []Time {
	if len(p.Quanta) > 0 {
		out := make([]Time, len(p.Quanta))
		copy(out, p.Quanta)
		return out
	}
	out := make([]Time, p.Levels)
	for i := range out {
		out[i] = p.BaseQuantum << i
	}
	return out
}
