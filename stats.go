package mlfqsim

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ProcMetrics are the terminal per-proc numbers.
type ProcMetrics struct {
	ID         Tid
	Class      ProcClass
	Burst      Time
	Response   Time
	Completion Time
	Turnaround Time
	Waiting    Time
}

// Averages holds mean turnaround, waiting and response over some proc set.
type Averages struct {
	Turnaround float64
	Waiting    float64
	Response   float64
}

func (a Averages) String() string {
	return fmt.Sprintf("turnaround %.2f, waiting %.2f, response %.2f",
		a.Turnaround, a.Waiting, a.Response)
}

// Summary aggregates a finished run: per-proc metrics in id order, overall
// averages, and the I/O-bound vs CPU-bound split.
type Summary struct {
	Procs []ProcMetrics

	Overall  Averages
	IOBound  Averages
	CPUBound Averages

	NumIOBound  int
	NumCPUBound int
}

// Summary computes the final metrics. It fails if any proc has not finished
// (for example after a time-bound abort), since turnaround and waiting are
// undefined then.
func (s *Simulator) Summary() (*Summary, error) {
	if done := s.reg.numDone(); done < s.reg.len() {
		return nil, fmt.Errorf("summary needs a finished run: %d/%d procs done", done, s.reg.len())
	}

	sum := &Summary{Procs: make([]ProcMetrics, 0, s.reg.len())}
	var turnarounds, waitings, responses []Time
	var classTurnarounds, classResponses, classWaitings [2][]Time

	for _, p := range s.reg.all() {
		m := ProcMetrics{
			ID:         p.id,
			Class:      p.class,
			Burst:      p.burst,
			Response:   p.response(),
			Completion: Time(p.completion.MustGet()),
			Turnaround: p.turnaround(),
			Waiting:    p.waiting(),
		}
		sum.Procs = append(sum.Procs, m)

		turnarounds = append(turnarounds, m.Turnaround)
		waitings = append(waitings, m.Waiting)
		responses = append(responses, m.Response)
		classTurnarounds[p.class] = append(classTurnarounds[p.class], m.Turnaround)
		classWaitings[p.class] = append(classWaitings[p.class], m.Waiting)
		classResponses[p.class] = append(classResponses[p.class], m.Response)
	}

	sum.Overall = averagesOf(turnarounds, waitings, responses)
	sum.CPUBound = averagesOf(classTurnarounds[ClassCPUBound], classWaitings[ClassCPUBound], classResponses[ClassCPUBound])
	sum.IOBound = averagesOf(classTurnarounds[ClassIOBound], classWaitings[ClassIOBound], classResponses[ClassIOBound])
	sum.NumCPUBound = len(classTurnarounds[ClassCPUBound])
	sum.NumIOBound = len(classTurnarounds[ClassIOBound])

	return sum, nil
}

func averagesOf(turnarounds, waitings, responses []Time) Averages {
	if len(turnarounds) == 0 {
		return Averages{}
	}
	return Averages{
		Turnaround: stat.Mean(toFloats(turnarounds), nil),
		Waiting:    stat.Mean(toFloats(waitings), nil),
		Response:   stat.Mean(toFloats(responses), nil),
	}
}
