package report

import (
	"math"
	"testing"

	"github.com/roadwatch/budget-go/internal/domain"
)

func sampleAllocations() domain.AllocationSet {
	return domain.AllocationSet{
		"r1": {
			RepairID: "r1", Severity: domain.SeveritySevere,
			EstimatedCost: 500_000, AllocatedBudget: 500_000,
			FundingRatio: 1.0, CanComplete: true,
		},
		"r2": {
			RepairID: "r2", Severity: domain.SeverityModerate,
			EstimatedCost: 400_000, AllocatedBudget: 300_000,
			FundingRatio: 0.75, CanComplete: false,
		},
		"r3": {
			RepairID: "r3", Severity: domain.SeverityModerate,
			EstimatedCost: 200_000, AllocatedBudget: 100_000,
			FundingRatio: 0.5, CanComplete: false,
		},
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	rep := Generate(sampleAllocations(), 1_000_000)

	if rep.TotalBudget != 1_000_000 {
		t.Errorf("TotalBudget = %d, want 1000000", rep.TotalBudget)
	}
	if rep.TotalAllocated != 900_000 {
		t.Errorf("TotalAllocated = %d, want 900000", rep.TotalAllocated)
	}
	if rep.Unallocated != 100_000 {
		t.Errorf("Unallocated = %d, want 100000", rep.Unallocated)
	}
	if math.Abs(rep.AllocationRate-0.9) > 1e-9 {
		t.Errorf("AllocationRate = %v, want 0.9", rep.AllocationRate)
	}
	if rep.TotalRepairs != 3 || rep.FullyFunded != 1 || rep.PartiallyFunded != 2 {
		t.Errorf("counts = %d/%d/%d, want 3/1/2", rep.TotalRepairs, rep.FullyFunded, rep.PartiallyFunded)
	}

	severe := rep.SeverityBreakdown[domain.SeveritySevere]
	if severe.Count != 1 || severe.Allocated != 500_000 || severe.Estimated != 500_000 {
		t.Errorf("severe breakdown = %+v", severe)
	}
	moderate := rep.SeverityBreakdown[domain.SeverityModerate]
	if moderate.Count != 2 || moderate.Allocated != 400_000 || moderate.Estimated != 600_000 {
		t.Errorf("moderate breakdown = %+v", moderate)
	}
	if _, ok := rep.SeverityBreakdown[domain.SeverityMinor]; ok {
		t.Error("minor breakdown present, want absent for zero repairs")
	}
}

func TestGenerate_Empty(t *testing.T) {
	t.Parallel()
	rep := Generate(domain.AllocationSet{}, 500_000)
	if rep.TotalAllocated != 0 || rep.Unallocated != 500_000 || rep.AllocationRate != 0 {
		t.Errorf("empty report = %+v", rep)
	}
}

func TestStatistics(t *testing.T) {
	t.Parallel()
	stats := Statistics(sampleAllocations())

	if stats.TotalAllocated != 900_000 {
		t.Errorf("TotalAllocated = %d, want 900000", stats.TotalAllocated)
	}
	if stats.TotalEstimated != 1_100_000 {
		t.Errorf("TotalEstimated = %d, want 1100000", stats.TotalEstimated)
	}
	if stats.MinFundingRatio != 0.5 || stats.MaxFundingRatio != 1.0 {
		t.Errorf("ratio bounds = %v/%v, want 0.5/1.0", stats.MinFundingRatio, stats.MaxFundingRatio)
	}
	if math.Abs(stats.AverageFundingRatio-0.75) > 1e-9 {
		t.Errorf("AverageFundingRatio = %v, want 0.75", stats.AverageFundingRatio)
	}
	if stats.FullyFundedCount != 1 || stats.PartiallyFundedCount != 2 {
		t.Errorf("funded counts = %d/%d, want 1/2", stats.FullyFundedCount, stats.PartiallyFundedCount)
	}
	if math.Abs(stats.AverageAllocated-300_000) > 1e-9 {
		t.Errorf("AverageAllocated = %v, want 300000", stats.AverageAllocated)
	}
}

func TestStatistics_Empty(t *testing.T) {
	t.Parallel()
	stats := Statistics(domain.AllocationSet{})
	if stats != (domain.AllocationStats{}) {
		t.Errorf("empty stats = %+v, want zero value", stats)
	}
}
