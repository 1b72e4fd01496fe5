package shadow

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/roadwatch/budget-go/internal/allocation"
	"github.com/roadwatch/budget-go/internal/convert"
	"github.com/roadwatch/budget-go/internal/domain"
	"github.com/roadwatch/budget-go/internal/pricing"
	"github.com/roadwatch/budget-go/internal/report"
)

// GoRunner executes this optimizer on a damage-records file.
type GoRunner struct {
	Budget domain.BudgetConfig
}

// Run converts, prices, and allocates the records in recordsPath, returning
// JSON with the same top-level keys as the legacy script's --json-output:
// {"allocations": {...}, "report": {...}}.
func (r *GoRunner) Run(ctx context.Context, recordsPath string, totalBudget int64, strategy domain.Strategy) ([]byte, error) {
	raw, err := os.ReadFile(recordsPath)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	var records []convert.InboundRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}

	inputs, skipped := convert.Batch(records)
	if len(skipped) > 0 {
		return nil, fmt.Errorf("records %v failed conversion; shadow runs need a clean input set", skippedIndexes(skipped))
	}

	est, err := pricing.NewEstimator(r.Budget)
	if err != nil {
		return nil, err
	}
	repairs, err := est.NewRepairs(inputs)
	if err != nil {
		return nil, err
	}

	allocs, err := allocation.Optimize(repairs, totalBudget, strategy)
	if err != nil {
		return nil, err
	}

	output := map[string]any{
		"allocations": allocs,
		"report":      report.Generate(allocs, totalBudget),
	}
	return json.MarshalIndent(output, "", "  ")
}

func skippedIndexes(skipped []convert.SkippedRecord) []int {
	idx := make([]int, len(skipped))
	for i, s := range skipped {
		idx[i] = s.Index
	}
	return idx
}
