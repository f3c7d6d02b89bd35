package mlfqsim

import "errors"

var (
	// ErrInvalidConfig covers bad simulation parameters, rejected before the
	// run starts.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidWorkload covers bad process descriptors (non-positive burst,
	// negative arrival, duplicate ids), rejected before the run starts.
	ErrInvalidWorkload = errors.New("invalid workload")

	// ErrNothingRunnable means the loop found no runnable proc, no pending
	// arrival and no pending I/O return while unfinished procs remain. That
	// is a bookkeeping bug, so the run aborts instead of looping forever.
	ErrNothingRunnable = errors.New("nothing runnable and nothing arriving")

	// ErrTimeLimit is returned when simulated time passes the configured
	// ceiling before every proc finished.
	ErrTimeLimit = errors.New("did not finish within time bound")
)
