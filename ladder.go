package mlfqsim

import "fmt"

// Ladder is the fixed sequence of priority levels. Level 0 is the highest
// priority; quanta grow with the level index. Each level's FIFO holds proc
// ids, resolved against the registry.
type Ladder struct {
	reg    *Registry
	levels []*Queue
	quanta []Time
}

func newLadder(quanta []Time, reg *Registry) *Ladder {
	levels := make([]*Queue, len(quanta))
	for i := range levels {
		levels[i] = newQueue()
	}
	return &Ladder{
		reg:    reg,
		levels: levels,
		quanta: quanta,
	}
}

func (l *Ladder) String() string {
	str := ""
	for i, q := range l.levels {
		str += fmt.Sprintf("L%d(q=%v): %v ", i, l.quanta[i], q)
	}
	return str
}

func (l *Ladder) numLevels() int {
	return len(l.levels)
}

func (l *Ladder) quantumFor(level int) Time {
	return l.quanta[level]
}

// enqueue appends the proc to the tail of the given level and resets its
// quantum usage. A level out of range is a programmer error, not a runtime
// condition.
func (l *Ladder) enqueue(id Tid, level int) {
	if level < 0 || level >= len(l.levels) {
		panic(fmt.Sprintf("ladder: level %d out of range [0,%d)", level, len(l.levels)))
	}
	p := l.reg.proc(id)
	p.level = level
	p.usedInQuantum = 0
	p.state = StateRunnable
	l.levels[level].enq(id)
}

// dequeueHighest removes and returns the head of the first non-empty level,
// scanning from level 0 down. This realizes cross-level priority; FIFO order
// within a level realizes round robin at equal priority.
func (l *Ladder) dequeueHighest() (*Proc, bool) {
	for _, q := range l.levels {
		if id, ok := q.deq(); ok {
			p := l.reg.proc(id)
			p.state = StateRunning
			return p, true
		}
	}
	return nil, false
}

// boostAll drains every level below the top into level 0, preserving
// relative order level by level, and returns how many procs moved.
func (l *Ladder) boostAll() int {
	moved := 0
	for lvl := 1; lvl < len(l.levels); lvl++ {
		for {
			id, ok := l.levels[lvl].deq()
			if !ok {
				break
			}
			l.enqueue(id, 0)
			moved++
		}
	}
	return moved
}

// holds reports whether the id sits in any level's FIFO.
func (l *Ladder) holds(id Tid) bool {
	for _, q := range l.levels {
		if q.contains(id) {
			return true
		}
	}
	return false
}
