package mlfqsim

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/markphelps/optional"
)

func mustRun(t *testing.T, params Params, descs []ProcDesc) *Simulator {
	t.Helper()
	sim, err := NewSimulator(params, descs, nil)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	if err := sim.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return sim
}

func eventsOfKind(sim *Simulator, kind EventKind) []Event {
	out := make([]Event, 0)
	for _, e := range sim.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func procEvents(sim *Simulator, id Tid, kind EventKind) []Event {
	out := make([]Event, 0)
	for _, e := range sim.Events() {
		if e.Pid == id && e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// A long CPU-bound proc must lose the CPU after one level-0 quantum so the
// two short procs finish well before it, unlike FCFS order.
func TestShortProcsOvertakeLongOne(t *testing.T) {
	params := Params{Levels: 3, BaseQuantum: 10, BoostInterval: 1000, IODelay: 10}
	descs := []ProcDesc{
		{ID: 1, Arrival: 0, Burst: 24, Class: ClassCPUBound},
		{ID: 2, Arrival: 0, Burst: 3, Class: ClassCPUBound},
		{ID: 3, Arrival: 0, Burst: 3, Class: ClassCPUBound},
	}
	sim := mustRun(t, params, descs)

	demotes := procEvents(sim, 1, EventDemote)
	if len(demotes) == 0 {
		t.Fatal("proc 1 was never demoted")
	}
	if got := demotes[0]; got.At != 10 || got.Level != 1 {
		t.Errorf("first demotion of proc 1 = t=%v level=%d, want t=10 level=1", got.At, got.Level)
	}

	completes := eventsOfKind(sim, EventComplete)
	gotOrder := make([]Tid, 0, len(completes))
	for _, e := range completes {
		gotOrder = append(gotOrder, e.Pid)
	}
	if want := []Tid{2, 3, 1}; !reflect.DeepEqual(gotOrder, want) {
		t.Errorf("completion order = %v, want %v", gotOrder, want)
	}

	sum, err := sim.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	// FCFS would make the short procs wait 24 and 27 units behind proc 1
	for _, m := range sum.Procs {
		if m.ID == 1 {
			continue
		}
		if m.Waiting >= 24 {
			t.Errorf("proc %d waiting = %v, want < 24 (FCFS floor)", m.ID, m.Waiting)
		}
	}
}

// An I/O-bound proc keeps yielding before its quantum runs out, so it is
// never demoted and responds faster than the CPU-bound proc next to it.
func TestIOBoundKeepsPriority(t *testing.T) {
	params := DefaultParams()
	descs := []ProcDesc{
		{ID: 1, Arrival: 0, Burst: 5, Class: ClassIOBound},
		{ID: 2, Arrival: 0, Burst: 100, Class: ClassCPUBound},
	}
	sim := mustRun(t, params, descs)

	if demotes := procEvents(sim, 1, EventDemote); len(demotes) != 0 {
		t.Errorf("I/O-bound proc was demoted: %v", demotes)
	}
	for _, e := range procEvents(sim, 1, EventDispatch) {
		if e.Level != 0 {
			t.Errorf("I/O-bound proc dispatched at level %d, want 0: %v", e.Level, e)
		}
	}

	sum, err := sim.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	var ioResp, cpuResp Time
	for _, m := range sum.Procs {
		if m.Class == ClassIOBound {
			ioResp = m.Response
		} else {
			cpuResp = m.Response
		}
	}
	if ioResp >= cpuResp {
		t.Errorf("I/O-bound response %v, CPU-bound response %v, want strictly lower", ioResp, cpuResp)
	}
}

// After a boost fires, a proc starved at the bottom level must run next at
// level 0 with the level-0 quantum.
func TestBoostLiftsStarvedProc(t *testing.T) {
	params := Params{Levels: 3, BaseQuantum: 10, BoostInterval: 50, IODelay: 10}
	descs := []ProcDesc{
		{ID: 1, Arrival: 0, Burst: 200, Class: ClassCPUBound},
		{ID: 2, Arrival: 0, Burst: 200, Class: ClassCPUBound},
	}
	sim := mustRun(t, params, descs)

	events := sim.Events()
	boostIdx := -1
	for i, e := range events {
		if e.Kind == EventBoost {
			boostIdx = i
			break
		}
	}
	if boostIdx == -1 {
		t.Fatal("no boost fired")
	}

	bottomed := false
	for _, e := range events[:boostIdx] {
		if e.Kind == EventDemote && e.Level == 2 {
			bottomed = true
		}
	}
	if !bottomed {
		t.Fatal("no proc reached the bottom level before the boost")
	}

	var next *Event
	for i := boostIdx + 1; i < len(events); i++ {
		if events[i].Kind == EventDispatch {
			next = &events[i]
			break
		}
	}
	if next == nil {
		t.Fatal("no dispatch after the boost")
	}
	if next.Level != 0 || next.Quantum != 10 {
		t.Errorf("first dispatch after boost: level=%d quantum=%v, want level=0 quantum=10", next.Level, next.Quantum)
	}
}

// With arrivals spread out, the loop must jump the clock to the next
// arrival instead of busy-looping at an unchanged time.
func TestIdleSkipsToNextArrival(t *testing.T) {
	params := Params{Levels: 3, BaseQuantum: 10, BoostInterval: 1000, IODelay: 10}
	descs := []ProcDesc{
		{ID: 1, Arrival: 0, Burst: 5, Class: ClassCPUBound},
		{ID: 2, Arrival: 10, Burst: 5, Class: ClassCPUBound},
		{ID: 3, Arrival: 20, Burst: 5, Class: ClassCPUBound},
		{ID: 4, Arrival: 30, Burst: 5, Class: ClassCPUBound},
		{ID: 5, Arrival: 40, Burst: 5, Class: ClassCPUBound},
	}
	sim := mustRun(t, params, descs)

	events := sim.Events()
	idles := eventsOfKind(sim, EventIdle)
	if len(idles) != 4 {
		t.Fatalf("got %d idle events, want 4", len(idles))
	}
	for i, e := range events {
		if e.Kind != EventIdle {
			continue
		}
		if i+1 >= len(events) {
			t.Fatal("trace ends on an idle event")
		}
		next := events[i+1]
		if next.At <= e.At {
			t.Errorf("no progress after idle at %v: next event at %v", e.At, next.At)
		}
		if next.Kind != EventArrive {
			t.Errorf("event after idle = %v, want an arrival", next)
		}
	}
}

// Identical procs at the same priority degrade to plain round robin, so the
// average waiting time must match the textbook (n-1)*burst/2.
func TestEqualProcsRoundRobinWaiting(t *testing.T) {
	const (
		n     = 3
		burst = 10
	)
	params := Params{Levels: 3, BaseQuantum: 10, BoostInterval: 1000, IODelay: 10}
	descs := make([]ProcDesc, n)
	for i := range descs {
		descs[i] = ProcDesc{ID: Tid(i + 1), Arrival: 0, Burst: burst, Class: ClassCPUBound}
	}
	sim := mustRun(t, params, descs)

	sum, err := sim.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	want := float64((n-1)*burst) / 2
	if diff := math.Abs(sum.Overall.Waiting - want); diff > float64(params.BaseQuantum) {
		t.Errorf("average waiting = %v, want %v within one quantum", sum.Overall.Waiting, want)
	}

	// finishing exactly at quantum exhaustion counts as completion
	if demotes := eventsOfKind(sim, EventDemote); len(demotes) != 0 {
		t.Errorf("exact-quantum completions were demoted: %v", demotes)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() (*Simulator, *Summary) {
		sim := mustRun(t, DefaultParams(), DefaultWorkload())
		sum, err := sim.Summary()
		if err != nil {
			t.Fatalf("Summary: %v", err)
		}
		return sim, sum
	}

	simA, sumA := run()
	simB, sumB := run()

	if !reflect.DeepEqual(simA.Events(), simB.Events()) {
		t.Error("two runs over identical input produced different traces")
	}
	if !reflect.DeepEqual(sumA, sumB) {
		t.Error("two runs over identical input produced different summaries")
	}
}

func TestRunInvariants(t *testing.T) {
	sim := mustRun(t, DefaultParams(), DefaultWorkload())

	prev := Time(0)
	for _, e := range sim.Events() {
		if e.At < prev {
			t.Fatalf("clock went backwards: %v after %v", e.At, prev)
		}
		prev = e.At
	}

	sum, err := sim.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	for _, m := range sum.Procs {
		var arrival Time
		for _, d := range DefaultWorkload() {
			if d.ID == m.ID {
				arrival = d.Arrival
			}
		}
		if m.Completion < arrival+m.Burst {
			t.Errorf("proc %d completed at %v, before arrival+burst=%v", m.ID, m.Completion, arrival+m.Burst)
		}
		if m.Turnaround != m.Completion-arrival {
			t.Errorf("proc %d turnaround = %v, want completion-arrival = %v", m.ID, m.Turnaround, m.Completion-arrival)
		}
		if m.Waiting != m.Turnaround-m.Burst {
			t.Errorf("proc %d waiting = %v, want turnaround-burst = %v", m.ID, m.Waiting, m.Turnaround-m.Burst)
		}
		if m.Waiting < 0 || m.Response < 0 {
			t.Errorf("proc %d has negative waiting (%v) or response (%v)", m.ID, m.Waiting, m.Response)
		}
	}

	for _, p := range sim.Procs() {
		if p.remaining != 0 || p.state != StateDone {
			t.Errorf("proc %d not terminal after run: %v", p.id, p)
		}
	}
}

func TestRunStopsAtTimeBound(t *testing.T) {
	params := DefaultParams()
	params.MaxTime = optional.NewInt64(50)
	descs := []ProcDesc{{ID: 1, Arrival: 0, Burst: 10000, Class: ClassCPUBound}}

	sim, err := NewSimulator(params, descs, nil)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	if err := sim.Run(); !errors.Is(err, ErrTimeLimit) {
		t.Fatalf("Run error = %v, want ErrTimeLimit", err)
	}
	if _, err := sim.Summary(); err == nil {
		t.Error("Summary succeeded on an unfinished run")
	}
}
