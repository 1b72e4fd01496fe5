// Package report aggregates allocation results into the summary structures
// the rest of the system consumes. Pure summation and grouping; no policy.
package report

import (
	"github.com/roadwatch/budget-go/internal/domain"
)

// Generate builds a BudgetReport over an allocation set and the budget the
// allocation was run against.
func Generate(allocations domain.AllocationSet, totalBudget int64) domain.BudgetReport {
	rep := domain.BudgetReport{
		TotalBudget:       totalBudget,
		TotalRepairs:      len(allocations),
		SeverityBreakdown: make(map[domain.Severity]domain.SeverityTotals),
	}

	for _, a := range allocations {
		rep.TotalAllocated += a.AllocatedBudget
		if a.CanComplete {
			rep.FullyFunded++
		} else {
			rep.PartiallyFunded++
		}

		totals := rep.SeverityBreakdown[a.Severity]
		totals.Count++
		totals.Allocated += a.AllocatedBudget
		totals.Estimated += a.EstimatedCost
		rep.SeverityBreakdown[a.Severity] = totals
	}

	rep.Unallocated = totalBudget - rep.TotalAllocated
	if totalBudget > 0 {
		rep.AllocationRate = float64(rep.TotalAllocated) / float64(totalBudget)
	}
	return rep
}

// Statistics computes descriptive statistics over an allocation set.
func Statistics(allocations domain.AllocationSet) domain.AllocationStats {
	stats := domain.AllocationStats{}
	if len(allocations) == 0 {
		return stats
	}

	first := true
	var ratioSum float64
	for _, a := range allocations {
		stats.TotalAllocated += a.AllocatedBudget
		stats.TotalEstimated += a.EstimatedCost
		ratioSum += a.FundingRatio

		if first || a.FundingRatio < stats.MinFundingRatio {
			stats.MinFundingRatio = a.FundingRatio
		}
		if first || a.FundingRatio > stats.MaxFundingRatio {
			stats.MaxFundingRatio = a.FundingRatio
		}
		first = false

		if a.CanComplete {
			stats.FullyFundedCount++
		} else {
			stats.PartiallyFundedCount++
		}
	}

	n := float64(len(allocations))
	stats.AverageAllocated = float64(stats.TotalAllocated) / n
	stats.AverageEstimated = float64(stats.TotalEstimated) / n
	stats.AverageFundingRatio = ratioSum / n
	return stats
}
