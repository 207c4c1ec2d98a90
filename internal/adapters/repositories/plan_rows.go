package repositories

import (
	"flight-plan-service/internal/domain"
	"fmt"
)

const defaultListLimit = 20

// legRow is one stored leg together with its position.
type legRow struct {
	planIndex int
	legIndex  int
	leg       domain.Leg
}

// assemblePlans rebuilds plans from rows ordered by (plan_index, leg_index).
func assemblePlans(rows []legRow, planCount int) ([]*domain.Plan, error) {
	grouped := make([][]domain.Leg, planCount)
	for _, r := range rows {
		if r.planIndex < 0 || r.planIndex >= planCount {
			return nil, fmt.Errorf("assemble plans: plan index %d out of range [0,%d)", r.planIndex, planCount)
		}
		if r.legIndex != len(grouped[r.planIndex]) {
			return nil, fmt.Errorf("assemble plans: plan %d: leg %d out of sequence", r.planIndex, r.legIndex)
		}
		grouped[r.planIndex] = append(grouped[r.planIndex], r.leg)
	}

	plans := make([]*domain.Plan, 0, planCount)
	for i, legs := range grouped {
		p, err := domain.PlanFromLegs(legs)
		if err != nil {
			return nil, fmt.Errorf("assemble plans: plan %d: %w", i, err)
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
