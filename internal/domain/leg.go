package domain

import (
	"fmt"
	"time"
)

// LegKind distinguishes a flown connection from a turnaround wait.
type LegKind int

const (
	LegAir LegKind = iota
	LegIdle
)

func (k LegKind) String() string {
	switch k {
	case LegAir:
		return "Air"
	case LegIdle:
		return "Idle"
	default:
		return fmt.Sprintf("LegKind(%d)", int(k))
	}
}

// ParseLegKind is the inverse of LegKind.String.
func ParseLegKind(s string) (LegKind, error) {
	switch s {
	case "Air":
		return LegAir, nil
	case "Idle":
		return LegIdle, nil
	default:
		return 0, fmt.Errorf("parse leg kind: unknown kind %q", s)
	}
}

// Leg is one scheduled activity of an aircraft. For Idle legs Orig == Dest.
type Leg struct {
	Kind LegKind
	Orig string
	Dest string
	Dept time.Time
	Arrv time.Time
}

func AirLeg(orig, dest string, dept, arrv time.Time) Leg {
	return Leg{Kind: LegAir, Orig: orig, Dest: dest, Dept: dept, Arrv: arrv}
}

func IdleLeg(at string, dept, arrv time.Time) Leg {
	return Leg{Kind: LegIdle, Orig: at, Dest: at, Dept: dept, Arrv: arrv}
}

// Duration is the time span the leg occupies.
func (l Leg) Duration() time.Duration { return l.Arrv.Sub(l.Dept) }

func (l Leg) String() string {
	dest := "---"
	if l.Dest != "" {
		dest = fmt.Sprintf("%-3s", l.Dest)
	}
	return fmt.Sprintf("%-4s %-3s-%s %s-%s",
		l.Kind, l.Orig, dest, l.Dept.Format("15:04"), l.Arrv.Format("15:04"))
}

func (l Leg) validate() error {
	if l.Arrv.Before(l.Dept) {
		return invariantf("leg %s arrives before it departs", l)
	}
	if l.Kind == LegIdle && l.Orig != l.Dest {
		return invariantf("idle leg %s changes location", l)
	}
	if l.Kind == LegAir && l.Orig == l.Dest {
		return invariantf("air leg %s does not move", l)
	}
	return nil
}
