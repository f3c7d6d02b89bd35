package mlfqsim

import (
	"fmt"

	"github.com/markphelps/optional"
)

// ProcState tracks where a proc is in its lifecycle. A proc is only ever in
// a ladder FIFO while Runnable; WaitingIO procs sit outside all queues until
// their resume time.
type ProcState int

const (
	StateUnarrived ProcState = iota
	StateRunnable
	StateRunning
	StateWaitingIO
	StateDone
)

func (s ProcState) String() string {
	switch s {
	case StateUnarrived:
		return "unarrived"
	case StateRunnable:
		return "runnable"
	case StateRunning:
		return "running"
	case StateWaitingIO:
		return "waiting-io"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProcClass is fixed at creation and decides how a proc spends its quantum:
// CPU-bound procs run until the quantum is gone, I/O-bound procs yield after
// a fifth of it.
type ProcClass int

const (
	ClassCPUBound ProcClass = iota
	ClassIOBound
)

func (c ProcClass) String() string {
	if c == ClassIOBound {
		return "I/O-bound"
	}
	return "CPU-bound"
}

// Proc is one simulated unit of work. The registry owns every Proc; the
// ladder only ever holds its id.
type Proc struct {
	id      Tid
	arrival Time
	burst   Time
	class   ProcClass

	state         ProcState
	remaining     Time
	level         int
	usedInQuantum Time
	resumeAt      Time // only meaningful while state == StateWaitingIO

	firstRun   optional.Int64
	completion optional.Int64
}

func optionalTime(t Time) optional.Int64 {
	return optional.NewInt64(int64(t))
}

func newProc(id Tid, arrival, burst Time, class ProcClass) *Proc {
	return &Proc{
		id:        id,
		arrival:   arrival,
		burst:     burst,
		class:     class,
		state:     StateUnarrived,
		remaining: burst,
	}
}

func (p *Proc) String() string {
	return fmt.Sprintf("%d: %v, %v, arrival %v, burst %v, remaining %v, level %d",
		p.id, p.class, p.state, p.arrival, p.burst, p.remaining, p.level)
}

// runFor consumes up to toRun units of the remaining burst, returning the
// time actually used and whether the proc finished.
func (p *Proc) runFor(toRun Time) (Time, bool) {
	if toRun >= p.remaining {
		used := p.remaining
		p.remaining = 0
		p.usedInQuantum += used
		return used, true
	}
	p.remaining -= toRun
	p.usedInQuantum += toRun
	return toRun, false
}

// The derived metrics assume the relevant optional has been set; callers
// only reach for them once the proc is Done (completion) or has been
// dispatched at least once (response).

func (p *Proc) turnaround() Time {
	return Time(p.completion.MustGet()) - p.arrival
}

func (p *Proc) waiting() Time {
	return p.turnaround() - p.burst
}

func (p *Proc) response() Time {
	return Time(p.firstRun.MustGet()) - p.arrival
}
