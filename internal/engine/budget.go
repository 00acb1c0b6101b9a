package engine

import "github.com/jomtravel/group-trip-engine/internal/domain"

// Budget window returned when nobody has set a budget. Downstream code treats
// an empty group as "no constraint", never as an error.
const (
	openBudgetMin = 0
	openBudgetMax = 5000
)

// AggregateBudgets reduces per-member budget ranges into the group-feasible
// window: the highest minimum, the lowest maximum, and the mean of the
// per-member midpoints. When ranges do not overlap the result has Min > Max;
// infeasibility is surfaced later as a high-severity conflict, not here.
func AggregateBudgets(ranges []domain.BudgetRange) domain.AggregatedBudget {
	if len(ranges) == 0 {
		return domain.AggregatedBudget{
			Min:     openBudgetMin,
			Max:     openBudgetMax,
			Average: (openBudgetMin + openBudgetMax) / 2,
		}
	}

	out := domain.AggregatedBudget{Min: ranges[0].Min, Max: ranges[0].Max}
	var midSum float64
	for i, r := range ranges {
		if i > 0 {
			if r.Min > out.Min {
				out.Min = r.Min
			}
			if r.Max < out.Max {
				out.Max = r.Max
			}
		}
		midSum += (r.Min + r.Max) / 2
	}
	out.Average = midSum / float64(len(ranges))
	return out
}

// budgetRanges collects the ranges of members who have set one.
func budgetRanges(members []domain.PreferenceRecord) []domain.BudgetRange {
	var out []domain.BudgetRange
	for _, m := range members {
		if m.BudgetRange != nil {
			out = append(out, *m.BudgetRange)
		}
	}
	return out
}
