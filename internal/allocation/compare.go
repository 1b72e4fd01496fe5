package allocation

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/roadwatch/budget-go/internal/domain"
	"github.com/roadwatch/budget-go/internal/report"
)

// StrategyOutcome is the result of running one strategy during a comparison.
// A strategy that fails (for example hybrid with under-funded critical
// repairs) reports its error here instead of aborting the comparison.
type StrategyOutcome struct {
	Strategy    domain.Strategy      `json:"strategy"`
	Allocations domain.AllocationSet `json:"allocations,omitempty"`
	Report      *domain.BudgetReport `json:"report,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// CompareStrategies runs every allocation strategy over the same repairs and
// budget, concurrently, and returns the per-strategy outcomes. The engine
// holds no shared mutable state, so the strategies can run in parallel.
func CompareStrategies(ctx context.Context, repairs []domain.RepairRequest, totalBudget int64) (map[domain.Strategy]StrategyOutcome, error) {
	outcomes := make([]StrategyOutcome, len(domain.Strategies))

	g, ctx := errgroup.WithContext(ctx)
	for i, strategy := range domain.Strategies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome := StrategyOutcome{Strategy: strategy}
			allocs, err := Optimize(repairs, totalBudget, strategy)
			if err != nil {
				outcome.Error = err.Error()
			} else {
				rep := report.Generate(allocs, totalBudget)
				outcome.Allocations = allocs
				outcome.Report = &rep
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byStrategy := make(map[domain.Strategy]StrategyOutcome, len(outcomes))
	for _, o := range outcomes {
		byStrategy[o.Strategy] = o
	}
	return byStrategy, nil
}
