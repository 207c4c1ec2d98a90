package domain

import (
	"strings"
	"time"
)

// Plan is an ordered, time-chained sequence of legs.
//
// A Plan is persistent: each value holds its final leg and a pointer to the
// plan it was extended from. Extending never touches the parent, so sibling
// plans share their common prefix by reference. The nil *Plan is the empty plan.
type Plan struct {
	parent *Plan
	leg    Leg
	size   int
}

// NewPlan starts a plan from its first Air leg and the turnaround that follows it.
func NewPlan(air, idle Leg) (*Plan, error) {
	var p *Plan
	return p.Extend(air, idle)
}

// PlanFromLegs rebuilds a plan from a flat leg list, re-checking every chain link.
func PlanFromLegs(legs []Leg) (*Plan, error) {
	var p *Plan
	for _, l := range legs {
		next, err := p.Append(l)
		if err != nil {
			return nil, err
		}
		p = next
	}
	return p, nil
}

// Extend returns p followed by an Air leg and the Idle leg at its destination.
func (p *Plan) Extend(air, idle Leg) (*Plan, error) {
	if air.Kind != LegAir {
		return nil, invariantf("extend: expected an Air leg, got %s", air.Kind)
	}
	if idle.Kind != LegIdle {
		return nil, invariantf("extend: expected an Idle leg, got %s", idle.Kind)
	}
	withAir, err := p.Append(air)
	if err != nil {
		return nil, err
	}
	return withAir.Append(idle)
}

// Append returns p followed by l. The leg must continue the chain:
// same location and same instant as the current last leg's arrival.
func (p *Plan) Append(l Leg) (*Plan, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	if p != nil {
		last := p.leg
		if last.Dest != l.Orig {
			return nil, invariantf("leg %s does not start at %q", l, last.Dest)
		}
		if !last.Arrv.Equal(l.Dept) {
			return nil, invariantf("leg %s does not depart at %s", l, last.Arrv.Format(time.RFC3339))
		}
	}
	return &Plan{parent: p, leg: l, size: p.Len() + 1}, nil
}

// Len returns the number of legs.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return p.size
}

// Last returns the final leg. It reports false for the empty plan.
func (p *Plan) Last() (Leg, bool) {
	if p == nil {
		return Leg{}, false
	}
	return p.leg, true
}

// First returns the opening leg. It reports false for the empty plan.
func (p *Plan) First() (Leg, bool) {
	if p == nil {
		return Leg{}, false
	}
	for p.parent != nil {
		p = p.parent
	}
	return p.leg, true
}

// Prefix returns the plan made of the first n legs. Shares storage with p.
func (p *Plan) Prefix(n int) *Plan {
	if n <= 0 {
		return nil
	}
	for p != nil && p.size > n {
		p = p.parent
	}
	return p
}

// Legs returns a fresh slice with the legs in flying order.
func (p *Plan) Legs() []Leg {
	out := make([]Leg, p.Len())
	for i := len(out) - 1; p != nil; i, p = i-1, p.parent {
		out[i] = p.leg
	}
	return out
}

// AirTime sums the duration of all Air legs.
func (p *Plan) AirTime() time.Duration {
	var total time.Duration
	for ; p != nil; p = p.parent {
		if p.leg.Kind == LegAir {
			total += p.leg.Duration()
		}
	}
	return total
}

// Key is a canonical rendering of the leg sequence, equal for equal plans.
func (p *Plan) Key() string {
	var b strings.Builder
	for i, l := range p.Legs() {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(l.Kind.String())
		b.WriteByte(' ')
		b.WriteString(l.Orig)
		b.WriteByte('>')
		b.WriteString(l.Dest)
		b.WriteByte(' ')
		b.WriteString(l.Dept.UTC().Format(time.RFC3339Nano))
		b.WriteByte('/')
		b.WriteString(l.Arrv.UTC().Format(time.RFC3339Nano))
	}
	return b.String()
}

func (p *Plan) String() string {
	legs := p.Legs()
	parts := make([]string, len(legs))
	for i, l := range legs {
		parts[i] = l.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
