package dto

import "flight-plan-service/internal/domain"

func FromRun(run *domain.SearchRun) RunResponse {
	res := RunResponse{
		ID:                run.ID,
		Hub:               run.Hub,
		StartAt:           run.Start,
		EndAt:             run.End,
		TurnaroundMinutes: int(run.Turnaround.Minutes()),
		DurationScale:     run.DurationScale,
		CloseAtHub:        run.ClosedAtHub,
		CreatedAt:         run.CreatedAt,
		Plans:             make([]PlanResponse, 0, len(run.Plans)),
	}
	for _, p := range run.Plans {
		legs := p.Legs()
		out := PlanResponse{
			Legs:           make([]LegResponse, 0, len(legs)),
			AirTimeMinutes: int(p.AirTime().Minutes()),
		}
		for _, l := range legs {
			out.Legs = append(out.Legs, LegResponse{
				Kind:   l.Kind.String(),
				Orig:   l.Orig,
				Dest:   l.Dest,
				DeptAt: l.Dept,
				ArrvAt: l.Arrv,
			})
		}
		res.Plans = append(res.Plans, out)
	}
	return res
}

func FromRunSummaries(runs []domain.RunSummary) ListRunsResponse {
	res := ListRunsResponse{Runs: make([]RunSummaryResponse, 0, len(runs))}
	for _, r := range runs {
		res.Runs = append(res.Runs, RunSummaryResponse{
			ID:        r.ID,
			Hub:       r.Hub,
			StartAt:   r.Start,
			EndAt:     r.End,
			PlanCount: r.PlanCount,
			CreatedAt: r.CreatedAt,
		})
	}
	return res
}

func FromNetwork(n *domain.Network) NetworkResponse {
	res := NetworkResponse{}
	for _, a := range n.Airports() {
		res.Airports = append(res.Airports, AirportResponse{Code: a.Code, Name: a.Name})
	}
	for _, s := range n.Arcs() {
		res.Arcs = append(res.Arcs, ArcResponse{
			From:            s.From,
			To:              s.To,
			DistanceKm:      s.Arc.DistanceKm,
			DurationMinutes: int(s.Arc.Duration.Minutes()),
		})
	}
	return res
}
