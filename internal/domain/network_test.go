package domain

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func testAirports() []Airport {
	return []Airport{
		{Code: "SAW", Name: "İstanbul Sabiha Gökçen"},
		{Code: "ESB", Name: "Ankara Esenboğa"},
		{Code: "AYT", Name: "Antalya"},
	}
}

func testArcs() []ArcSpec {
	return []ArcSpec{
		{From: "SAW", To: "ESB", Arc: Arc{DistanceKm: 323, Duration: 60 * time.Minute}},
		{From: "SAW", To: "AYT", Arc: Arc{DistanceKm: 652, Duration: 75 * time.Minute}},
		{From: "ESB", To: "AYT", Arc: Arc{DistanceKm: 406, Duration: 65 * time.Minute}},
	}
}

func TestNewNetworkRejectsBadInput(t *testing.T) {
	cases := []struct {
		name     string
		airports []Airport
		arcs     []ArcSpec
	}{
		{
			name:     "unknown destination",
			airports: testAirports(),
			arcs:     []ArcSpec{{From: "SAW", To: "IST", Arc: Arc{DistanceKm: 40, Duration: 30 * time.Minute}}},
		},
		{
			name:     "unknown origin",
			airports: testAirports(),
			arcs:     []ArcSpec{{From: "ADB", To: "SAW", Arc: Arc{DistanceKm: 330, Duration: 60 * time.Minute}}},
		},
		{
			name:     "self loop",
			airports: testAirports(),
			arcs:     []ArcSpec{{From: "SAW", To: "SAW", Arc: Arc{Duration: time.Minute}}},
		},
		{
			name:     "zero duration",
			airports: testAirports(),
			arcs:     []ArcSpec{{From: "SAW", To: "ESB", Arc: Arc{DistanceKm: 323}}},
		},
		{
			name:     "negative distance",
			airports: testAirports(),
			arcs:     []ArcSpec{{From: "SAW", To: "ESB", Arc: Arc{DistanceKm: -1, Duration: time.Hour}}},
		},
		{
			name:     "duplicate airport",
			airports: append(testAirports(), Airport{Code: "SAW"}),
		},
		{
			name:     "empty code",
			airports: []Airport{{Code: "  "}},
		},
		{
			name:     "duplicate arc",
			airports: testAirports(),
			arcs:     append(testArcs(), testArcs()[0]),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewNetwork(tc.airports, tc.arcs)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("err = %v, want ErrConfiguration", err)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err = %T, want *ConfigurationError", err)
			}
		})
	}
}

func TestNetworkSymmetrize(t *testing.T) {
	n, err := NewNetwork(testAirports(), testArcs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sym := n.Symmetrize()

	for _, s := range sym.Arcs() {
		back, ok := sym.Arc(s.To, s.From)
		if !ok {
			t.Fatalf("missing reverse arc %s->%s", s.To, s.From)
		}
		if back != s.Arc {
			t.Errorf("arc %s->%s = %v, reverse = %v", s.From, s.To, s.Arc, back)
		}
	}

	if got := len(sym.Arcs()); got != 6 {
		t.Fatalf("arc count = %d, want 6", got)
	}

	// The source network keeps its original three arcs.
	if got := len(n.Arcs()); got != 3 {
		t.Fatalf("source arc count = %d, want 3", got)
	}

	// Changing one direction must not leak into the other.
	a := sym.arcs["ESB"]["SAW"]
	a.Duration = 5 * time.Hour
	sym.arcs["ESB"]["SAW"] = a
	if fwd, _ := sym.Arc("SAW", "ESB"); fwd.Duration != 60*time.Minute {
		t.Fatalf("forward duration = %v, want 60m", fwd.Duration)
	}
}

func TestNetworkSymmetrizeKeepsAuthoredReverse(t *testing.T) {
	arcs := append(testArcs(), ArcSpec{From: "ESB", To: "SAW", Arc: Arc{DistanceKm: 330, Duration: 70 * time.Minute}})
	n, err := NewNetwork(testAirports(), arcs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back, ok := n.Symmetrize().Arc("ESB", "SAW")
	if !ok {
		t.Fatal("missing ESB->SAW")
	}
	if back.DistanceKm != 330 || back.Duration != 70*time.Minute {
		t.Fatalf("ESB->SAW = %v, want authored Arc(330, 70)", back)
	}
}

func TestNetworkScaleDurations(t *testing.T) {
	n, err := NewNetwork(testAirports(), testArcs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	same, err := n.ScaleDurations(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if same != n {
		t.Fatal("factor 1 should return the receiver")
	}

	doubled, err := n.ScaleDurations(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a, _ := doubled.Arc("SAW", "AYT"); a.Duration != 150*time.Minute || a.DistanceKm != 652 {
		t.Fatalf("scaled SAW->AYT = %v, want Arc( 652, 150)", a)
	}
	if a, _ := n.Arc("SAW", "AYT"); a.Duration != 75*time.Minute {
		t.Fatalf("source SAW->AYT duration = %v, want 75m", a.Duration)
	}

	for _, f := range []float64{0, -1} {
		if _, err := n.ScaleDurations(f); !errors.Is(err, ErrConfiguration) {
			t.Errorf("ScaleDurations(%v) err = %v, want ErrConfiguration", f, err)
		}
	}
}

func TestNetworkDestinations(t *testing.T) {
	n, err := NewNetwork(testAirports(), testArcs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx := n.Symmetrize().Destinations()

	want := map[string][]string{
		"SAW": {"AYT", "ESB"},
		"ESB": {"AYT", "SAW"},
		"AYT": {"ESB", "SAW"},
	}
	for from, codes := range want {
		if got := idx.From(from); !slices.Equal(got, codes) {
			t.Errorf("Destinations[%s] = %v, want %v", from, got, codes)
		}
	}
}

func TestArcString(t *testing.T) {
	a := Arc{DistanceKm: 323, Duration: 60 * time.Minute}
	if got, want := a.String(), "Arc( 323,  60)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
