package mlfqsim

import (
	"fmt"
	"sort"
)

// Registry owns every Proc in the simulation. The ladder and the scheduler
// loop resolve ids against it instead of holding their own pointers into a
// shared array.
type Registry struct {
	procs []*Proc
	byID  map[Tid]*Proc
}

func newRegistry(descs []ProcDesc) (*Registry, error) {
	r := &Registry{
		procs: make([]*Proc, 0, len(descs)),
		byID:  make(map[Tid]*Proc, len(descs)),
	}
	for _, d := range descs {
		if d.Burst <= 0 {
			return nil, fmt.Errorf("%w: proc %d has non-positive burst %v", ErrInvalidWorkload, d.ID, d.Burst)
		}
		if d.Arrival < 0 {
			return nil, fmt.Errorf("%w: proc %d has negative arrival %v", ErrInvalidWorkload, d.ID, d.Arrival)
		}
		if _, ok := r.byID[d.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate proc id %d", ErrInvalidWorkload, d.ID)
		}
		p := newProc(d.ID, d.Arrival, d.Burst, d.Class)
		r.procs = append(r.procs, p)
		r.byID[d.ID] = p
	}
	if len(r.procs) == 0 {
		return nil, fmt.Errorf("%w: empty workload", ErrInvalidWorkload)
	}
	// keep iteration order independent of descriptor order
	sort.Slice(r.procs, func(i, j int) bool {
		return r.procs[i].id < r.procs[j].id
	})
	return r, nil
}

func (r *Registry) proc(id Tid) *Proc {
	p, ok := r.byID[id]
	if !ok {
		panic(fmt.Sprintf("registry: unknown proc id %d", id))
	}
	return p
}

// all returns the procs in ascending id order.
func (r *Registry) all() []*Proc {
	return r.procs
}

func (r *Registry) len() int {
	return len(r.procs)
}

func (r *Registry) numDone() int {
	n := 0
	for _, p := range r.procs {
		if p.state == StateDone {
			n++
		}
	}
	return n
}
