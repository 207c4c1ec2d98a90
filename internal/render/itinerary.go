// Package render formats plans and networks as fixed-width text.
package render

import (
	"bufio"
	"flight-plan-service/internal/domain"
	"fmt"
	"io"
	"strings"
)

const clockLayout = "15:04"

func kindMark(k domain.LegKind) string {
	if k == domain.LegAir {
		return "-"
	}
	return "."
}

// WritePlan writes a plan as two aligned lines:
//
//	001:   SAW-  ESB.  ESB-  SAW.  SAW.
//	      06:00 07:00 07:30 08:30 09:00
//
// The empty plan writes nothing.
func WritePlan(w io.Writer, title string, p *domain.Plan) error {
	legs := p.Legs()
	if len(legs) == 0 {
		return nil
	}
	last := legs[len(legs)-1]

	var stops, times strings.Builder
	stops.WriteString(title + ": ")
	times.WriteString(strings.Repeat(" ", len(title)+2))
	for _, l := range legs {
		fmt.Fprintf(&stops, "%5s%s", l.Orig, kindMark(l.Kind))
		fmt.Fprintf(&times, " %s", l.Dept.Format(clockLayout))
	}
	fmt.Fprintf(&stops, "%5s%s", last.Dest, kindMark(last.Kind))
	fmt.Fprintf(&times, " %s", last.Arrv.Format(clockLayout))

	if _, err := fmt.Fprintf(w, "%s\n%s\n", stops.String(), times.String()); err != nil {
		return fmt.Errorf("write plan %s: %w", title, err)
	}
	return nil
}

// WritePlans numbers plans from 001 and separates them with a blank line.
func WritePlans(w io.Writer, plans []*domain.Plan) error {
	bw := bufio.NewWriter(w)
	for i, p := range plans {
		if err := WritePlan(bw, fmt.Sprintf("%03d", i+1), p); err != nil {
			return err
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return fmt.Errorf("write plans: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write plans: flush: %w", err)
	}
	return nil
}

// WriteNetwork lists airports, then one line per arc in code order.
func WriteNetwork(w io.Writer, n *domain.Network) error {
	bw := bufio.NewWriter(w)
	for _, a := range n.Airports() {
		if a.Name != "" {
			fmt.Fprintf(bw, "%-3s  %s\n", a.Code, a.Name)
		} else {
			fmt.Fprintf(bw, "%-3s\n", a.Code)
		}
	}
	bw.WriteString("\n")
	for _, s := range n.Arcs() {
		fmt.Fprintf(bw, "%-3s-%-3s %s\n", s.From, s.To, s.Arc)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write network: %w", err)
	}
	return nil
}
