// Package allocation implements the continuous budget allocation engine.
// Given priced, prioritized repairs and a total budget, it distributes money
// per one of four strategies, producing partial or full funding per repair.
// Every strategy guarantees the sum of allocations never exceeds the budget
// beyond per-repair integer rounding.
package allocation

import (
	"fmt"
	"math"

	"github.com/roadwatch/budget-go/internal/domain"
)

// Optimize distributes totalBudget across repairs using the given strategy
// and returns one AllocationResult per repair, keyed by repair id.
func Optimize(repairs []domain.RepairRequest, totalBudget int64, strategy domain.Strategy) (domain.AllocationSet, error) {
	if len(repairs) == 0 {
		return nil, fmt.Errorf("allocation: %w", domain.ErrNoRepairs)
	}
	if totalBudget <= 0 {
		return nil, fmt.Errorf("allocation: %w: got %d", domain.ErrNonPositiveBudget, totalBudget)
	}

	switch strategy {
	case domain.StrategyPriorityWeighted:
		return priorityWeighted(repairs, totalBudget)
	case domain.StrategySeverityFirst:
		return severityFirst(repairs, totalBudget)
	case domain.StrategyProportional:
		return proportional(repairs, totalBudget)
	case domain.StrategyHybrid:
		return hybrid(repairs, totalBudget)
	default:
		return nil, fmt.Errorf("allocation: %w: %q (must be one of %v)",
			domain.ErrUnknownStrategy, strategy, domain.Strategies)
	}
}

// newResult builds the per-repair result from a raw (pre-rounding) allocation.
func newResult(r domain.RepairRequest, allocated float64) domain.AllocationResult {
	rounded := int64(math.Round(allocated))
	ratio := 0.0
	if r.EstimatedCost > 0 {
		ratio = float64(rounded) / float64(r.EstimatedCost)
	}
	return domain.AllocationResult{
		RepairID:        r.ID,
		Severity:        r.Severity,
		Urgency:         r.Urgency,
		PriorityScore:   r.PriorityScore,
		EstimatedCost:   r.EstimatedCost,
		AllocatedBudget: rounded,
		FundingRatio:    ratio,
		CanComplete:     ratio >= 1.0,
	}
}

// priorityWeighted allocates proportionally to estimated_cost x priority_score.
// A repair whose priority is disproportionately high relative to its cost can
// end up with an allocation above its own estimated cost; that over-funding is
// deliberate and reported through the funding ratio.
func priorityWeighted(repairs []domain.RepairRequest, totalBudget int64) (domain.AllocationSet, error) {
	var totalWeighted float64
	weighted := make([]float64, len(repairs))
	for i, r := range repairs {
		weighted[i] = float64(r.EstimatedCost) * r.PriorityScore
		totalWeighted += weighted[i]
	}
	if totalWeighted == 0 {
		return nil, fmt.Errorf("allocation: %w: total weighted cost", domain.ErrZeroWeight)
	}

	out := make(domain.AllocationSet, len(repairs))
	for i, r := range repairs {
		out[r.ID] = newResult(r, weighted[i]/totalWeighted*float64(totalBudget))
	}
	return out, nil
}

// severityFirst funds severity groups in fixed order Severe, Moderate, Minor.
// Within a group each repair receives its proportional share of the budget
// remaining from earlier groups, capped at its own estimated cost; whatever a
// group does not consume rolls over to the next group, never back into the
// same group.
func severityFirst(repairs []domain.RepairRequest, totalBudget int64) (domain.AllocationSet, error) {
	groups := make(map[domain.Severity][]domain.RepairRequest)
	for _, r := range repairs {
		groups[r.Severity] = append(groups[r.Severity], r)
	}

	out := make(domain.AllocationSet, len(repairs))
	remaining := float64(totalBudget)

	for _, level := range domain.SeverityOrder {
		group := groups[level]
		if len(group) == 0 {
			continue
		}

		var groupCost float64
		for _, r := range group {
			groupCost += float64(r.EstimatedCost)
		}

		// Shares are computed against the budget left over from prior
		// groups; only the amounts actually allocated are deducted, so a
		// capped repair's unspent share rolls forward to the next group.
		groupBudget := remaining
		for _, r := range group {
			var allocated float64
			if groupCost > 0 && groupBudget > 0 {
				share := float64(r.EstimatedCost) / groupCost * groupBudget
				allocated = math.Min(share, float64(r.EstimatedCost))
			}
			out[r.ID] = newResult(r, allocated)
			remaining -= allocated
		}
	}
	return out, nil
}

// proportional allocates strictly by each repair's share of total estimated
// cost, ignoring severity and urgency.
func proportional(repairs []domain.RepairRequest, totalBudget int64) (domain.AllocationSet, error) {
	var totalCost float64
	for _, r := range repairs {
		totalCost += float64(r.EstimatedCost)
	}
	if totalCost == 0 {
		return nil, fmt.Errorf("allocation: %w: total estimated cost", domain.ErrZeroWeight)
	}

	out := make(domain.AllocationSet, len(repairs))
	for _, r := range repairs {
		out[r.ID] = newResult(r, float64(r.EstimatedCost)/totalCost*float64(totalBudget))
	}
	return out, nil
}

// hybrid fully funds critical repairs (Severe and immediate) first, then runs
// priority_weighted allocation over the remainder of the budget. It fails if
// the critical repairs alone exceed the budget.
func hybrid(repairs []domain.RepairRequest, totalBudget int64) (domain.AllocationSet, error) {
	var critical, regular []domain.RepairRequest
	for _, r := range repairs {
		if r.Severity == domain.SeveritySevere && r.Urgency == domain.UrgencyImmediate {
			critical = append(critical, r)
		} else {
			regular = append(regular, r)
		}
	}

	var criticalCost int64
	for _, r := range critical {
		criticalCost += r.EstimatedCost
	}
	if criticalCost > totalBudget {
		return nil, fmt.Errorf("allocation: %w: critical repairs cost %d, total budget %d",
			domain.ErrInsufficientCriticalBudget, criticalCost, totalBudget)
	}

	out := make(domain.AllocationSet, len(repairs))
	for _, r := range critical {
		res := newResult(r, float64(r.EstimatedCost))
		res.Category = domain.CategoryCritical
		out[r.ID] = res
	}

	if len(regular) == 0 {
		return out, nil
	}

	remaining := totalBudget - criticalCost
	if remaining > 0 {
		regularAllocs, err := priorityWeighted(regular, remaining)
		if err != nil {
			return nil, err
		}
		for id, res := range regularAllocs {
			res.Category = domain.CategoryRegular
			out[id] = res
		}
		return out, nil
	}

	// Budget exhausted by critical repairs: the rest get explicit zero
	// allocations rather than being dropped from the result.
	for _, r := range regular {
		res := newResult(r, 0)
		res.Category = domain.CategoryRegular
		out[r.ID] = res
	}
	return out, nil
}
