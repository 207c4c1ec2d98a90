package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Airport is a node of the connection network.
// Name is display-only and never consulted by the search.
type Airport struct {
	Code string
	Name string
}

// Arc holds the physical attributes of one direction of a connection.
// Arcs are values: every direction owns its own copy.
type Arc struct {
	DistanceKm int
	Duration   time.Duration
}

func (a Arc) String() string {
	return fmt.Sprintf("Arc(%4d, %3.0f)", a.DistanceKm, a.Duration.Minutes())
}

// ArcSpec is one directed arc supplied when building a Network.
type ArcSpec struct {
	From string
	To   string
	Arc  Arc
}

// Network is the directed connection graph: origin -> destination -> Arc.
// A Network is never modified after construction; transforms return a new value.
type Network struct {
	airports map[string]Airport
	arcs     map[string]map[string]Arc
}

// NewNetwork builds a Network from declared airports and direction-specific arcs.
func NewNetwork(airports []Airport, arcs []ArcSpec) (*Network, error) {
	n := &Network{
		airports: make(map[string]Airport, len(airports)),
		arcs:     make(map[string]map[string]Arc, len(airports)),
	}

	for i, a := range airports {
		code := strings.TrimSpace(a.Code)
		if code == "" {
			return nil, configErrorf("airports", "airport #%d has an empty code", i+1)
		}
		if _, ok := n.airports[code]; ok {
			return nil, configErrorf("airports", "duplicate airport code %q", code)
		}
		n.airports[code] = Airport{Code: code, Name: a.Name}
		n.arcs[code] = map[string]Arc{}
	}

	for _, s := range arcs {
		if err := n.checkArc(s); err != nil {
			return nil, err
		}
		if _, ok := n.arcs[s.From][s.To]; ok {
			return nil, configErrorf("arcs", "duplicate arc %s->%s", s.From, s.To)
		}
		n.arcs[s.From][s.To] = s.Arc
	}

	return n, nil
}

func (n *Network) checkArc(s ArcSpec) error {
	if _, ok := n.airports[s.From]; !ok {
		return configErrorf("arcs", "arc %s->%s references unknown airport %q", s.From, s.To, s.From)
	}
	if _, ok := n.airports[s.To]; !ok {
		return configErrorf("arcs", "arc %s->%s references unknown airport %q", s.From, s.To, s.To)
	}
	if s.From == s.To {
		return configErrorf("arcs", "self-loop arc at %q", s.From)
	}
	if s.Arc.DistanceKm < 0 {
		return configErrorf("arcs", "arc %s->%s has negative distance %d", s.From, s.To, s.Arc.DistanceKm)
	}
	if s.Arc.Duration <= 0 {
		return configErrorf("arcs", "arc %s->%s has non-positive duration %s", s.From, s.To, s.Arc.Duration)
	}
	return nil
}

// Symmetrize returns a Network where every arc (a,b) has a mirror (b,a).
// Missing reverse arcs copy the forward distance and duration; reverse arcs
// that were authored explicitly are kept as they are.
func (n *Network) Symmetrize() *Network {
	out := n.clone()
	for _, from := range n.codes() {
		for to, arc := range n.arcs[from] {
			if _, ok := out.arcs[to][from]; ok {
				continue
			}
			out.arcs[to][from] = Arc{DistanceKm: arc.DistanceKm, Duration: arc.Duration}
		}
	}
	return out
}

// ScaleDurations returns a Network with every arc duration multiplied by factor.
// A factor of 1 returns the receiver unchanged.
func (n *Network) ScaleDurations(factor float64) (*Network, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return nil, configErrorf("duration_scale", "factor must be a positive finite number, got %v", factor)
	}
	if factor == 1 {
		return n, nil
	}

	out := n.clone()
	for from, dests := range out.arcs {
		for to, arc := range dests {
			scaled := time.Duration(math.Round(float64(arc.Duration) * factor))
			if scaled <= 0 {
				return nil, configErrorf("duration_scale", "factor %v reduces arc %s->%s to zero duration", factor, from, to)
			}
			arc.Duration = scaled
			dests[to] = arc
		}
	}
	return out, nil
}

// Destinations derives the reachable-destinations index.
func (n *Network) Destinations() Destinations {
	idx := make(Destinations, len(n.arcs))
	for from, dests := range n.arcs {
		codes := make([]string, 0, len(dests))
		for to := range dests {
			if to == from {
				continue
			}
			codes = append(codes, to)
		}
		slices.Sort(codes)
		idx[from] = codes
	}
	return idx
}

// Arc returns the arc from -> to.
func (n *Network) Arc(from, to string) (Arc, bool) {
	a, ok := n.arcs[from][to]
	return a, ok
}

// Arcs lists every directed arc ordered by origin then destination.
func (n *Network) Arcs() []ArcSpec {
	out := make([]ArcSpec, 0)
	for _, from := range n.codes() {
		tos := make([]string, 0, len(n.arcs[from]))
		for to := range n.arcs[from] {
			tos = append(tos, to)
		}
		slices.Sort(tos)
		for _, to := range tos {
			out = append(out, ArcSpec{From: from, To: to, Arc: n.arcs[from][to]})
		}
	}
	return out
}

func (n *Network) Airport(code string) (Airport, bool) {
	a, ok := n.airports[code]
	return a, ok
}

func (n *Network) HasAirport(code string) bool {
	_, ok := n.airports[code]
	return ok
}

// Airports lists declared airports ordered by code.
func (n *Network) Airports() []Airport {
	out := make([]Airport, 0, len(n.airports))
	for _, code := range n.codes() {
		out = append(out, n.airports[code])
	}
	return out
}

// Len returns the number of declared airports.
func (n *Network) Len() int { return len(n.airports) }

func (n *Network) codes() []string {
	codes := make([]string, 0, len(n.airports))
	for code := range n.airports {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

func (n *Network) clone() *Network {
	out := &Network{
		airports: make(map[string]Airport, len(n.airports)),
		arcs:     make(map[string]map[string]Arc, len(n.arcs)),
	}
	for code, a := range n.airports {
		out.airports[code] = a
	}
	for from, dests := range n.arcs {
		m := make(map[string]Arc, len(dests))
		for to, arc := range dests {
			m[to] = arc
		}
		out.arcs[from] = m
	}
	return out
}

// Destinations maps an airport code to the codes directly reachable from it,
// in ascending order.
type Destinations map[string][]string

// From returns the reachable codes for an airport, or nil when it has none.
func (d Destinations) From(code string) []string { return d[code] }
