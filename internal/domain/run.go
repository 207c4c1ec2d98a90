package domain

import "time"

// SearchRun is one executed enumeration together with the inputs that produced it.
// It is immutable record data, produced by the planner and kept by a PlanStore.
type SearchRun struct {
	ID            string
	Hub           string
	Start         time.Time
	End           time.Time
	Turnaround    time.Duration
	DurationScale float64
	ClosedAtHub   bool
	CreatedAt     time.Time
	Plans         []*Plan
}

// RunSummary is a SearchRun without its plans.
type RunSummary struct {
	ID        string
	Hub       string
	Start     time.Time
	End       time.Time
	PlanCount int
	CreatedAt time.Time
}

func (r *SearchRun) Summary() RunSummary {
	return RunSummary{
		ID:        r.ID,
		Hub:       r.Hub,
		Start:     r.Start,
		End:       r.End,
		PlanCount: len(r.Plans),
		CreatedAt: r.CreatedAt,
	}
}
