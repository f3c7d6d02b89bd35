package mlfqsim

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
)

const ioQuantumShare = 5 // I/O-bound procs yield after 1/5 of the quantum

// Simulator drives the MLFQ run from time 0 until every proc is done. It is
// single threaded; all state is mutated by Run's sequential steps.
type Simulator struct {
	params Params
	reg    *Registry
	ladder *Ladder
	log    *slog.Logger

	now       Time
	lastBoost Time
	events    []Event
}

// NewSimulator validates the parameters and workload and sets up a run.
// A nil logger silences the trace log; the recorded event slice is always
// kept.
func NewSimulator(params Params, descs []ProcDesc, logger *slog.Logger) (*Simulator, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	reg, err := newRegistry(descs)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Simulator{
		params: params,
		reg:    reg,
		ladder: newLadder(params.quantaSchedule(), reg),
		log:    logger,
	}, nil
}

func (s *Simulator) String() string {
	return fmt.Sprintf("t=%v done=%d/%d ladder: %v", s.now, s.reg.numDone(), s.reg.len(), s.ladder)
}

// Now returns the current simulated time.
func (s *Simulator) Now() Time {
	return s.now
}

// Events returns the trace recorded so far, in order.
func (s *Simulator) Events() []Event {
	return s.events
}

// Procs exposes the registry's procs in ascending id order.
func (s *Simulator) Procs() []*Proc {
	return s.reg.all()
}

// Run executes the simulation to completion. It returns ErrTimeLimit if a
// configured ceiling is passed first, or ErrNothingRunnable on a scheduler
// bookkeeping bug.
func (s *Simulator) Run() error {
	for s.reg.numDone() < s.reg.len() {
		if max, err := s.params.MaxTime.Get(); err == nil && int64(s.now) > max {
			return fmt.Errorf("%w: t=%v, %d/%d procs done",
				ErrTimeLimit, s.now, s.reg.numDone(), s.reg.len())
		}

		s.admitDue()

		if s.now-s.lastBoost >= s.params.BoostInterval {
			moved := s.ladder.boostAll()
			s.lastBoost = s.now
			s.emit(Event{At: s.now, Kind: EventBoost, Pid: -1, Level: 0})
			s.log.Debug("boost moved procs", TimeAttr("t", s.now), IntAttr("moved", moved))
		}

		p, ok := s.ladder.dequeueHighest()
		if !ok {
			if err := s.idle(); err != nil {
				return err
			}
			continue
		}
		s.dispatch(p)
	}
	return nil
}

// admitDue moves every proc whose arrival or I/O resume time has been
// reached into the ladder, in (due time, id) order. New arrivals enter at
// level 0 (new jobs start at highest priority); I/O returns keep the level
// they yielded from.
func (s *Simulator) admitDue() {
	due := make([]*Proc, 0)
	for _, p := range s.reg.all() {
		switch p.state {
		case StateUnarrived:
			if p.arrival <= s.now {
				due = append(due, p)
			}
		case StateWaitingIO:
			if p.resumeAt <= s.now {
				due = append(due, p)
			}
		}
	}
	sort.Slice(due, func(i, j int) bool {
		di, dj := s.dueTime(due[i]), s.dueTime(due[j])
		if di != dj {
			return di < dj
		}
		return due[i].id < due[j].id
	})
	for _, p := range due {
		if p.state == StateUnarrived {
			s.ladder.enqueue(p.id, 0)
			s.emit(Event{At: s.now, Kind: EventArrive, Pid: p.id, Level: 0})
		} else {
			s.ladder.enqueue(p.id, p.level)
			s.emit(Event{At: s.now, Kind: EventIOReturn, Pid: p.id, Level: p.level})
		}
	}
}

func (s *Simulator) dueTime(p *Proc) Time {
	if p.state == StateWaitingIO {
		return p.resumeAt
	}
	return p.arrival
}

// idle advances the clock straight to the earliest pending due time. No
// pending proc while unfinished procs remain means queue bookkeeping broke.
func (s *Simulator) idle() error {
	next := Time(-1)
	for _, p := range s.reg.all() {
		if p.state != StateUnarrived && p.state != StateWaitingIO {
			continue
		}
		if d := s.dueTime(p); next == -1 || d < next {
			next = d
		}
	}
	if next == -1 {
		return fmt.Errorf("%w: t=%v, %d/%d procs done",
			ErrNothingRunnable, s.now, s.reg.numDone(), s.reg.len())
	}
	s.emit(Event{At: s.now, Kind: EventIdle, Pid: -1, Level: -1})
	s.now = next
	return nil
}

// dispatch runs p for one bounded slice and routes it back into the ladder,
// applying exactly one of: completion, I/O yield, demotion, same-level
// requeue, checked in that order. Completion wins at exact quantum
// exhaustion.
func (s *Simulator) dispatch(p *Proc) {
	level := p.level
	quantum := s.ladder.quantumFor(level)

	if !p.firstRun.Present() {
		p.firstRun = optionalTime(s.now)
	}

	var toRun Time
	if p.class == ClassIOBound {
		toRun = min(p.remaining, quantum/ioQuantumShare)
	} else {
		toRun = min(p.remaining, quantum-p.usedInQuantum)
	}

	s.emit(Event{At: s.now, Kind: EventDispatch, Pid: p.id, Level: level, Quantum: quantum})

	used, done := p.runFor(toRun)
	s.now += used

	switch {
	case done:
		p.state = StateDone
		p.completion = optionalTime(s.now)
		s.emit(Event{At: s.now, Kind: EventComplete, Pid: p.id, Level: level})
	case p.class == ClassIOBound && used < quantum:
		// voluntary yield keeps the priority level; the proc sits outside
		// the ladder until its simulated I/O finishes
		p.state = StateWaitingIO
		p.usedInQuantum = 0
		p.resumeAt = s.now + s.params.IODelay
		s.emit(Event{At: s.now, Kind: EventYield, Pid: p.id, Level: level})
	case p.usedInQuantum >= quantum:
		next := level
		if next < s.ladder.numLevels()-1 {
			next++
		}
		s.ladder.enqueue(p.id, next)
		s.emit(Event{At: s.now, Kind: EventDemote, Pid: p.id, Level: next})
	default:
		s.ladder.enqueue(p.id, level)
		s.emit(Event{At: s.now, Kind: EventRequeue, Pid: p.id, Level: level})
	}
}

func (s *Simulator) emit(e Event) {
	s.events = append(s.events, e)
	s.log.Info(e.Kind.String(),
		TimeAttr("t", e.At),
		PidAttr(e.Pid),
		IntAttr("level", e.Level),
	)
}
