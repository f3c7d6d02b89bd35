package mlfqsim

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ProcDesc describes one proc to simulate.
type ProcDesc struct {
	ID      Tid
	Arrival Time
	Burst   Time
	Class   ProcClass
}

// DefaultWorkload is the demonstration mix: one long CPU-bound proc, two
// short I/O-bound procs, and two later arrivals.
func DefaultWorkload() []ProcDesc {
	return []ProcDesc{
		{ID: 1, Arrival: 0, Burst: 100, Class: ClassCPUBound},
		{ID: 2, Arrival: 0, Burst: 5, Class: ClassIOBound},
		{ID: 3, Arrival: 0, Burst: 5, Class: ClassIOBound},
		{ID: 4, Arrival: 10, Burst: 80, Class: ClassCPUBound},
		{ID: 5, Arrival: 20, Burst: 15, Class: ClassIOBound},
	}
}

// LoadWorkload parses proc descriptors from CSV rows of the form
// id,arrival,burst,class where class is "cpu" or "io".
func LoadWorkload(r io.Reader) ([]ProcDesc, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV: %v", ErrInvalidWorkload, err)
	}

	descs := make([]ProcDesc, 0, len(rows))
	for i, row := range rows {
		if len(row) != 4 {
			return nil, fmt.Errorf("%w: row %d has %d fields, want 4", ErrInvalidWorkload, i+1, len(row))
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad id %q", ErrInvalidWorkload, i+1, row[0])
		}
		arrival, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad arrival %q", ErrInvalidWorkload, i+1, row[1])
		}
		burst, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad burst %q", ErrInvalidWorkload, i+1, row[2])
		}
		class, err := parseClass(row[3])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidWorkload, i+1, err)
		}
		descs = append(descs, ProcDesc{
			ID:      Tid(id),
			Arrival: Time(arrival),
			Burst:   Time(burst),
			Class:   class,
		})
	}
	return descs, nil
}

func parseClass(s string) (ProcClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpu", "cpu-bound":
		return ClassCPUBound, nil
	case "io", "i/o", "io-bound", "i/o-bound":
		return ClassIOBound, nil
	default:
		return 0, fmt.Errorf("bad class %q", s)
	}
}
