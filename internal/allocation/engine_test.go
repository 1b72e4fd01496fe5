package allocation

import (
	"errors"
	"math"
	"testing"

	"github.com/roadwatch/budget-go/internal/domain"
	"github.com/roadwatch/budget-go/internal/testutil"
)

func TestOptimize_RequestValidation(t *testing.T) {
	t.Parallel()
	repairs := []domain.RepairRequest{
		testutil.RepairWithCost("r1", domain.SeverityModerate, domain.UrgencyRoutine, 100_000, 2.0),
	}

	tests := []struct {
		name     string
		repairs  []domain.RepairRequest
		budget   int64
		strategy domain.Strategy
		want     error
	}{
		{name: "empty repairs", repairs: nil, budget: 1_000_000, strategy: domain.StrategyProportional, want: domain.ErrNoRepairs},
		{name: "zero budget", repairs: repairs, budget: 0, strategy: domain.StrategyProportional, want: domain.ErrNonPositiveBudget},
		{name: "negative budget", repairs: repairs, budget: -5, strategy: domain.StrategyProportional, want: domain.ErrNonPositiveBudget},
		{name: "unknown strategy", repairs: repairs, budget: 1_000_000, strategy: "greedy", want: domain.ErrUnknownStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Optimize(tt.repairs, tt.budget, tt.strategy)
			if !errors.Is(err, tt.want) {
				t.Errorf("Optimize error = %v, want errors.Is(%v)", err, tt.want)
			}
		})
	}
}

func TestOptimize_BudgetNeverExceeded(t *testing.T) {
	t.Parallel()
	repairs := []domain.RepairRequest{
		testutil.RepairWithCost("r1", domain.SeveritySevere, domain.UrgencyImmediate, 2_500_000, 7.1),
		testutil.RepairWithCost("r2", domain.SeverityModerate, domain.UrgencyUrgent, 400_000, 2.4),
		testutil.RepairWithCost("r3", domain.SeverityModerate, domain.UrgencyRoutine, 900_000, 1.9),
		testutil.RepairWithCost("r4", domain.SeverityMinor, domain.UrgencyRoutine, 150_000, 0.8),
	}
	const budget = 3_000_000

	for _, strategy := range domain.Strategies {
		t.Run(string(strategy), func(t *testing.T) {
			t.Parallel()
			allocs, err := Optimize(repairs, budget, strategy)
			if err != nil {
				t.Fatalf("Optimize(%s): %v", strategy, err)
			}
			if len(allocs) != len(repairs) {
				t.Fatalf("got %d allocations, want one per repair (%d)", len(allocs), len(repairs))
			}
			var total int64
			for _, a := range allocs {
				total += a.AllocatedBudget
			}
			// Allow one currency unit of rounding per repair.
			if total > budget+int64(len(repairs)) {
				t.Errorf("total allocated %d exceeds budget %d beyond rounding", total, budget)
			}
		})
	}
}

func TestProportional_ReferenceScenario(t *testing.T) {
	t.Parallel()
	// Costs 2.5M/0.4M/0.9M against a 3M budget: allocations are exactly
	// proportional and the full budget is spent (sum of costs > budget).
	repairs := []domain.RepairRequest{
		testutil.RepairWithCost("r1", domain.SeveritySevere, domain.UrgencyRoutine, 2_500_000, 3.0),
		testutil.RepairWithCost("r2", domain.SeverityModerate, domain.UrgencyRoutine, 400_000, 2.0),
		testutil.RepairWithCost("r3", domain.SeverityModerate, domain.UrgencyRoutine, 900_000, 2.0),
	}
	const budget = 3_000_000

	allocs, err := Optimize(repairs, budget, domain.StrategyProportional)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	want := map[string]int64{
		"r1": 1_973_684,
		"r2": 315_789,
		"r3": 710_526,
	}
	var total int64
	for id, wantAlloc := range want {
		got := allocs[id].AllocatedBudget
		if got != wantAlloc {
			t.Errorf("allocation[%s] = %d, want %d", id, got, wantAlloc)
		}
		total += got
	}
	if total < budget-int64(len(repairs)) || total > budget {
		t.Errorf("total allocated = %d, want budget %d within rounding", total, budget)
	}
}

func TestProportional_EqualFundingRatios(t *testing.T) {
	t.Parallel()
	repairs := []domain.RepairRequest{
		testutil.RepairWithCost("r1", domain.SeveritySevere, domain.UrgencyImmediate, 1_234_567, 9.0),
		testutil.RepairWithCost("r2", domain.SeverityMinor, domain.UrgencyRoutine, 89_000, 0.5),
		testutil.RepairWithCost("r3", domain.SeverityModerate, domain.UrgencyUrgent, 456_789, 2.2),
	}

	allocs, err := Optimize(repairs, 1_000_000, domain.StrategyProportional)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	ratios := make([]float64, 0, len(allocs))
	for _, a := range allocs {
		ratios = append(ratios, a.FundingRatio)
	}
	for i := 1; i < len(ratios); i++ {
		if math.Abs(ratios[i]-ratios[0]) > 1e-4 {
			t.Errorf("funding ratios diverge: %v vs %v", ratios[i], ratios[0])
		}
	}
}

func TestPriorityWeighted_CanOverFund(t *testing.T) {
	t.Parallel()
	// A cheap repair with a huge priority draws more than its own cost;
	// that over-funding is part of the strategy's contract.
	repairs := []domain.RepairRequest{
		testutil.RepairWithCost("cheap-critical", domain.SeveritySevere, domain.UrgencyImmediate, 100, 10.0),
		testutil.RepairWithCost("dear-trivial", domain.SeverityMinor, domain.UrgencyRoutine, 900, 0.1),
	}

	allocs, err := Optimize(repairs, 1000, domain.StrategyPriorityWeighted)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	over := allocs["cheap-critical"]
	if over.AllocatedBudget <= over.EstimatedCost {
		t.Errorf("allocated %d, want over-funding above cost %d", over.AllocatedBudget, over.EstimatedCost)
	}
	if !over.CanComplete {
		t.Error("CanComplete = false for funding ratio above 1")
	}
	if over.FundingRatio <= 1 {
		t.Errorf("FundingRatio = %v, want > 1", over.FundingRatio)
	}
}

func TestPriorityWeighted_ZeroWeight(t *testing.T) {
	t.Parallel()
	repairs := []domain.RepairRequest{
		testutil.RepairWithCost("r1", domain.SeverityMinor, domain.UrgencyRoutine, 0, 0),
	}
	_, err := Optimize(repairs, 1000, domain.StrategyPriorityWeighted)
	if !errors.Is(err, domain.ErrZeroWeight) {
		t.Errorf("Optimize error = %v, want errors.Is(ErrZeroWeight)", err)
	}
}

func TestSeverityFirst_FundsBySeverityOrder(t *testing.T) {
	t.Parallel()
	repairs := []domain.RepairRequest{
		testutil.RepairWithCost("minor", domain.SeverityMinor, domain.UrgencyRoutine, 300_000, 1.0),
		testutil.RepairWithCost("severe", domain.SeveritySevere, domain.UrgencyRoutine, 500_000, 3.0),
		testutil.RepairWithCost("moderate", domain.SeverityModerate, domain.UrgencyRoutine, 400_000, 2.0),
	}

	allocs, err := Optimize(repairs, 800_000, domain.StrategySeverityFirst)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	severe := allocs["severe"]
	moderate := allocs["moderate"]
	minor := allocs["minor"]

	if !severe.CanComplete || severe.AllocatedBudget != 500_000 {
		t.Errorf("severe allocation = %+v, want fully funded at 500000", severe)
	}
	if moderate.AllocatedBudget != 300_000 {
		t.Errorf("moderate allocation = %d, want the 300000 carried over", moderate.AllocatedBudget)
	}
	if minor.AllocatedBudget != 0 {
		t.Errorf("minor allocation = %d, want 0 once the budget is spent", minor.AllocatedBudget)
	}

	if severe.FundingRatio < moderate.FundingRatio || moderate.FundingRatio < minor.FundingRatio {
		t.Errorf("funding ratios out of severity order: %v %v %v",
			severe.FundingRatio, moderate.FundingRatio, minor.FundingRatio)
	}
}

func TestSeverityFirst_GroupLeftoverRollsForward(t *testing.T) {
	t.Parallel()
	// The severe group needs 200k of an 1M budget; the remaining 800k must
	// reach the moderate group rather than re-circulating among severe.
	repairs := []domain.RepairRequest{
		testutil.RepairWithCost("s1", domain.SeveritySevere, domain.UrgencyRoutine, 200_000, 3.0),
		testutil.RepairWithCost("m1", domain.SeverityModerate, domain.UrgencyRoutine, 600_000, 2.0),
		testutil.RepairWithCost("m2", domain.SeverityModerate, domain.UrgencyRoutine, 200_000, 2.0),
	}

	allocs, err := Optimize(repairs, 1_000_000, domain.StrategySeverityFirst)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	if got := allocs["s1"].AllocatedBudget; got != 200_000 {
		t.Errorf("s1 = %d, want capped at estimated cost 200000", got)
	}
	if got := allocs["m1"].AllocatedBudget; got != 600_000 {
		t.Errorf("m1 = %d, want 600000", got)
	}
	if got := allocs["m2"].AllocatedBudget; got != 200_000 {
		t.Errorf("m2 = %d, want 200000", got)
	}
}

func TestHybrid_CriticalFullyFunded(t *testing.T) {
	t.Parallel()
	repairs := []domain.RepairRequest{
		testutil.RepairWithCost("crit1", domain.SeveritySevere, domain.UrgencyImmediate, 700_000, 9.0),
		testutil.RepairWithCost("crit2", domain.SeveritySevere, domain.UrgencyImmediate, 300_000, 8.0),
		testutil.RepairWithCost("reg1", domain.SeveritySevere, domain.UrgencyRoutine, 400_000, 3.5),
		testutil.RepairWithCost("reg2", domain.SeverityMinor, domain.UrgencyRoutine, 100_000, 0.7),
	}

	allocs, err := Optimize(repairs, 2_000_000, domain.StrategyHybrid)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	for _, id := range []string{"crit1", "crit2"} {
		a := allocs[id]
		if a.Category != domain.CategoryCritical {
			t.Errorf("%s category = %q, want Critical", id, a.Category)
		}
		if !a.CanComplete || a.AllocatedBudget != a.EstimatedCost {
			t.Errorf("%s = %+v, want fully funded", id, a)
		}
	}
	for _, id := range []string{"reg1", "reg2"} {
		if got := allocs[id].Category; got != domain.CategoryRegular {
			t.Errorf("%s category = %q, want Regular", id, got)
		}
	}

	var regular int64
	for _, id := range []string{"reg1", "reg2"} {
		regular += allocs[id].AllocatedBudget
	}
	// 2M minus 1M critical leaves 1M for the regular pool.
	if regular > 1_000_000+2 {
		t.Errorf("regular allocations %d exceed the remaining 1000000", regular)
	}
}

func TestHybrid_InsufficientCriticalBudget(t *testing.T) {
	t.Parallel()
	repairs := []domain.RepairRequest{
		testutil.RepairWithCost("crit", domain.SeveritySevere, domain.UrgencyImmediate, 2_000_000, 9.0),
	}
	_, err := Optimize(repairs, 1_000_000, domain.StrategyHybrid)
	if !errors.Is(err, domain.ErrInsufficientCriticalBudget) {
		t.Errorf("Optimize error = %v, want errors.Is(ErrInsufficientCriticalBudget)", err)
	}
}

func TestHybrid_BudgetExhaustedByCritical(t *testing.T) {
	t.Parallel()
	repairs := []domain.RepairRequest{
		testutil.RepairWithCost("crit", domain.SeveritySevere, domain.UrgencyImmediate, 1_000_000, 9.0),
		testutil.RepairWithCost("reg", domain.SeverityMinor, domain.UrgencyRoutine, 50_000, 0.5),
	}

	allocs, err := Optimize(repairs, 1_000_000, domain.StrategyHybrid)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	reg := allocs["reg"]
	if reg.AllocatedBudget != 0 || reg.CanComplete {
		t.Errorf("reg = %+v, want explicit zero allocation", reg)
	}
	if reg.Category != domain.CategoryRegular {
		t.Errorf("reg category = %q, want Regular", reg.Category)
	}
}
