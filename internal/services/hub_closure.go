package services

import "flight-plan-service/internal/domain"

// TrimToHub drops trailing legs until the plan ends at the hub.
// It reports false when the plan never comes back.
func TrimToHub(p *domain.Plan, hub string) (*domain.Plan, bool) {
	legs := p.Legs()
	for n := len(legs); n > 0; n-- {
		if legs[n-1].Dest == hub {
			return p.Prefix(n), true
		}
	}
	return nil, false
}

// CloseAtHub applies TrimToHub to every plan, drops plans that never return,
// and removes itineraries that become identical after trimming.
// Plans keep the order of their first occurrence.
func CloseAtHub(plans []*domain.Plan, hub string) []*domain.Plan {
	out := make([]*domain.Plan, 0, len(plans))
	seen := make(map[string]struct{}, len(plans))
	for _, p := range plans {
		trimmed, ok := TrimToHub(p, hub)
		if !ok {
			continue
		}
		key := trimmed.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
