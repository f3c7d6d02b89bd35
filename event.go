package mlfqsim

import "fmt"

// EventKind labels one entry of the simulation trace.
type EventKind int

const (
	EventArrive EventKind = iota
	EventIOReturn
	EventDispatch
	EventComplete
	EventYield
	EventDemote
	EventRequeue
	EventBoost
	EventIdle
)

func (k EventKind) String() string {
	switch k {
	case EventArrive:
		return "arrive"
	case EventIOReturn:
		return "io-return"
	case EventDispatch:
		return "dispatch"
	case EventComplete:
		return "complete"
	case EventYield:
		return "yield"
	case EventDemote:
		return "demote"
	case EventRequeue:
		return "requeue"
	case EventBoost:
		return "boost"
	case EventIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Event is one step of the recorded trace. Pid is -1 for boost and idle
// events; Quantum is only set on dispatch. Two runs over the same input
// produce identical event slices.
type Event struct {
	At      Time
	Kind    EventKind
	Pid     Tid
	Level   int
	Quantum Time
}

func (e Event) String() string {
	switch e.Kind {
	case EventBoost:
		return fmt.Sprintf("%v: priority boost", e.At)
	case EventIdle:
		return fmt.Sprintf("%v: cpu idle", e.At)
	case EventDispatch:
		return fmt.Sprintf("%v: %v proc %d (level=%d, quantum=%v)", e.At, e.Kind, e.Pid, e.Level, e.Quantum)
	default:
		return fmt.Sprintf("%v: %v proc %d (level=%d)", e.At, e.Kind, e.Pid, e.Level)
	}
}
