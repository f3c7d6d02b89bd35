package mlfqsim

import "fmt"

// Queue is a FIFO of proc ids, one per ladder level.
type Queue struct {
	q []Tid
}

func newQueue() *Queue {
	return &Queue{q: make([]Tid, 0)}
}

func (q *Queue) String() string {
	return fmt.Sprintf("%v", q.q)
}

func (q *Queue) enq(id Tid) {
	q.q = append(q.q, id)
}

func (q *Queue) deq() (Tid, bool) {
	if len(q.q) == 0 {
		return 0, false
	}
	id := q.q[0]
	q.q = q.q[1:]
	return id, true
}

func (q *Queue) qlen() int {
	return len(q.q)
}

func (q *Queue) contains(id Tid) bool {
	for _, other := range q.q {
		if other == id {
			return true
		}
	}
	return false
}
