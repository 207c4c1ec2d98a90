package services

import (
	"context"
	"flight-plan-service/internal/domain"
	"flight-plan-service/internal/platform/obs"
	"fmt"
	"math"
	"strings"
	"time"
)

// ctxCheckInterval is how many worklist pops happen between context checks.
const ctxCheckInterval = 256

// SearchRequest is the full configuration of one enumeration run.
type SearchRequest struct {
	Hub        string
	Start      time.Time
	End        time.Time
	Turnaround time.Duration
	// DurationScale multiplies every arc duration before the search. 0 means 1.
	DurationScale float64
}

func (r SearchRequest) scale() float64 {
	if r.DurationScale == 0 {
		return 1
	}
	return r.DurationScale
}

// Validate checks the request against the network it will run over.
func (r SearchRequest) Validate(network *domain.Network) error {
	if network == nil {
		return &domain.ConfigurationError{Field: "network", Reason: "network is required"}
	}
	if strings.TrimSpace(r.Hub) == "" {
		return &domain.ConfigurationError{Field: "hub", Reason: "hub must be non-empty"}
	}
	if !network.HasAirport(r.Hub) {
		return &domain.ConfigurationError{Field: "hub", Reason: fmt.Sprintf("unknown airport %q", r.Hub)}
	}
	if len(network.Destinations().From(r.Hub)) == 0 {
		return &domain.ConfigurationError{Field: "hub", Reason: fmt.Sprintf("airport %q has no outgoing arcs", r.Hub)}
	}
	if !r.End.After(r.Start) {
		return &domain.ConfigurationError{
			Field:  "end",
			Reason: fmt.Sprintf("end %s must be after start %s", r.End.Format(time.RFC3339), r.Start.Format(time.RFC3339)),
		}
	}
	if r.Turnaround < 0 {
		return &domain.ConfigurationError{Field: "turnaround", Reason: fmt.Sprintf("must be non-negative, got %s", r.Turnaround)}
	}
	if s := r.DurationScale; math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
		return &domain.ConfigurationError{Field: "duration_scale", Reason: fmt.Sprintf("must be a positive finite number, got %v", s)}
	}
	return nil
}

// SearchStats counts what the worklist did during one run.
type SearchStats struct {
	Seeded    int
	Expanded  int
	Children  int
	Completed int
	MaxLegs   int
}

// SearchResult is the completed-plans result set of one run.
type SearchResult struct {
	Plans []*domain.Plan
	Stats SearchStats
}

// Enumerate returns every maximal plan the aircraft can fly out of the hub
// inside [Start, End].
//
// Partial plans live on a LIFO worklist. A popped plan that admits at least one
// further Air leg is replaced by its extensions; a plan that admits none is
// complete. Extensions are pushed in destination order, so the result order is
// deterministic for a given input.
func Enumerate(ctx context.Context, network *domain.Network, req SearchRequest) (_ *SearchResult, err error) {
	defer obs.Time(ctx, "search.Enumerate")(&err)

	if err := req.Validate(network); err != nil {
		return nil, err
	}

	net, err := network.ScaleDurations(req.scale())
	if err != nil {
		return nil, fmt.Errorf("enumerate: %w", err)
	}
	destinations := net.Destinations()

	worklist, err := seed(net, destinations, req)
	if err != nil {
		return nil, fmt.Errorf("enumerate: seed: %w", err)
	}

	res := &SearchResult{Plans: []*domain.Plan{}}
	res.Stats.Seeded = len(worklist)

	for steps := 0; len(worklist) > 0; steps++ {
		if steps%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("enumerate: %w", err)
			}
		}

		x := worklist[len(worklist)-1]
		worklist[len(worklist)-1] = nil
		worklist = worklist[:len(worklist)-1]

		candidates := Extensions(net, destinations, x, req.End)
		if len(candidates) == 0 {
			res.Plans = append(res.Plans, x)
			if x.Len() > res.Stats.MaxLegs {
				res.Stats.MaxLegs = x.Len()
			}
			continue
		}

		// x gave birth to at least one child, so only the children survive.
		for _, air := range candidates {
			idleEnd := air.Arrv.Add(req.Turnaround)
			if idleEnd.After(req.End) {
				idleEnd = req.End
			}
			child, err := x.Extend(air, domain.IdleLeg(air.Dest, air.Arrv, idleEnd))
			if err != nil {
				return nil, fmt.Errorf("enumerate: extend plan: %w", err)
			}
			worklist = append(worklist, child)
		}
		res.Stats.Expanded++
		res.Stats.Children += len(candidates)
	}

	res.Stats.Completed = len(res.Plans)
	return res, nil
}

// seed builds the 2-leg starting plans: one flight out of the hub at Start per
// destination, followed by a full turnaround. Seeds are not checked against
// End: every hub destination yields one starting plan.
func seed(net *domain.Network, destinations domain.Destinations, req SearchRequest) ([]*domain.Plan, error) {
	worklist := make([]*domain.Plan, 0, len(destinations.From(req.Hub)))
	for _, d := range destinations.From(req.Hub) {
		arc, ok := net.Arc(req.Hub, d)
		if !ok {
			return nil, fmt.Errorf("missing arc %s->%s", req.Hub, d)
		}

		arrv := req.Start.Add(arc.Duration)
		p, err := domain.NewPlan(
			domain.AirLeg(req.Hub, d, req.Start, arrv),
			domain.IdleLeg(d, arrv, arrv.Add(req.Turnaround)),
		)
		if err != nil {
			return nil, err
		}
		worklist = append(worklist, p)
	}
	return worklist, nil
}

// Extensions returns the admissible next Air legs for a plan: one per
// destination reachable from the plan's final location, departing at the
// plan's final arrival and landing no later than end.
func Extensions(net *domain.Network, destinations domain.Destinations, p *domain.Plan, end time.Time) []domain.Leg {
	last, ok := p.Last()
	if !ok {
		return nil
	}

	fr := last.Dest
	var out []domain.Leg
	for _, to := range destinations.From(fr) {
		arc, ok := net.Arc(fr, to)
		if !ok {
			continue
		}
		arrv := last.Arrv.Add(arc.Duration)
		if arrv.After(end) {
			continue
		}
		out = append(out, domain.AirLeg(fr, to, last.Arrv, arrv))
	}
	return out
}
