package mlfqsim

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// RenderTrace writes the recorded events one per line.
func RenderTrace(w io.Writer, events []Event) {
	for _, e := range events {
		_, _ = fmt.Fprintln(w, e)
	}
}

// RenderSummary writes the per-proc metrics table with aggregate footer,
// followed by the per-class averages.
func RenderSummary(w io.Writer, sum *Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Class", "Burst", "Response", "Completion", "Turnaround", "Waiting"})
	rows := make([][]string, 0, len(sum.Procs))
	for _, m := range sum.Procs {
		rows = append(rows, []string{
			fmt.Sprintf("P%d", m.ID),
			m.Class.String(),
			fmt.Sprint(int64(m.Burst)),
			fmt.Sprint(int64(m.Response)),
			fmt.Sprint(int64(m.Completion)),
			fmt.Sprint(int64(m.Turnaround)),
			fmt.Sprint(int64(m.Waiting)),
		})
	}
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "",
		fmt.Sprintf("Avg\n%.2f", sum.Overall.Response),
		"",
		fmt.Sprintf("Avg\n%.2f", sum.Overall.Turnaround),
		fmt.Sprintf("Avg\n%.2f", sum.Overall.Waiting),
	})
	table.Render()

	_, _ = fmt.Fprintf(w, "\nOverall average: %v\n", sum.Overall)
	if sum.NumIOBound > 0 {
		_, _ = fmt.Fprintf(w, "I/O-bound average (%d procs): %v\n", sum.NumIOBound, sum.IOBound)
	}
	if sum.NumCPUBound > 0 {
		_, _ = fmt.Fprintf(w, "CPU-bound average (%d procs): %v\n", sum.NumCPUBound, sum.CPUBound)
	}
}

// RenderPreamble writes the MLFQ rules and the run's queue configuration,
// as the demonstration binary shows them before the trace.
func RenderPreamble(w io.Writer, params Params) {
	_, _ = fmt.Fprintln(w, "Multi-Level Feedback Queue (MLFQ) Scheduling Simulation")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Rules:")
	_, _ = fmt.Fprintln(w, "1. If Priority(A) > Priority(B), A runs")
	_, _ = fmt.Fprintln(w, "2. If Priority(A) = Priority(B), A and B run in round robin")
	_, _ = fmt.Fprintln(w, "3. A new job starts at the highest priority")
	_, _ = fmt.Fprintln(w, "4a. A job that uses its full time slice moves down one queue")
	_, _ = fmt.Fprintln(w, "4b. A job that gives up the CPU early stays at the same priority")
	_, _ = fmt.Fprintln(w, "5. Every S time units, all jobs move to the highest priority queue")
	_, _ = fmt.Fprintln(w)
	for i, q := range params.quantaSchedule() {
		_, _ = fmt.Fprintf(w, "Queue %d: quantum %v\n", i, q)
	}
	_, _ = fmt.Fprintf(w, "Boost interval: %v, I/O delay: %v\n\n", params.BoostInterval, params.IODelay)
}
