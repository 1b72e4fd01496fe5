package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds OTel metric instruments for the budget optimizer.
type Metrics struct {
	OptimizationCount  metric.Int64Counter
	AllocationLatency  metric.Float64Histogram
	RecordsSkipped     metric.Int64Counter
	SolverTimeouts     metric.Int64Counter
	BudgetAllocatedNGN metric.Int64Counter
}

// NewMetrics creates the optimizer metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("roadbudget")

	optimizationCount, err := meter.Int64Counter("roadbudget.optimization.count",
		metric.WithDescription("Number of optimization calls, by strategy"),
	)
	if err != nil {
		return nil, err
	}

	allocationLatency, err := meter.Float64Histogram("roadbudget.allocation.latency_seconds",
		metric.WithDescription("Wall time of one allocation or selection call"),
	)
	if err != nil {
		return nil, err
	}

	recordsSkipped, err := meter.Int64Counter("roadbudget.convert.skipped",
		metric.WithDescription("Inbound records dropped during batch conversion"),
	)
	if err != nil {
		return nil, err
	}

	solverTimeouts, err := meter.Int64Counter("roadbudget.knapsack.timeouts",
		metric.WithDescription("Knapsack solves that hit the solve timeout"),
	)
	if err != nil {
		return nil, err
	}

	budgetAllocated, err := meter.Int64Counter("roadbudget.budget.allocated",
		metric.WithDescription("Total currency units allocated across calls"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		OptimizationCount:  optimizationCount,
		AllocationLatency:  allocationLatency,
		RecordsSkipped:     recordsSkipped,
		SolverTimeouts:     solverTimeouts,
		BudgetAllocatedNGN: budgetAllocated,
	}, nil
}

// RecordOptimization records one allocation/selection call.
func (m *Metrics) RecordOptimization(ctx context.Context, strategy string, d time.Duration, allocated int64) {
	m.OptimizationCount.Add(ctx, 1,
		metric.WithAttributes(attribute.String("strategy", strategy)),
	)
	m.AllocationLatency.Record(ctx, d.Seconds())
	m.BudgetAllocatedNGN.Add(ctx, allocated)
}

// RecordSkipped records records dropped during batch conversion.
func (m *Metrics) RecordSkipped(ctx context.Context, n int) {
	if n > 0 {
		m.RecordsSkipped.Add(ctx, int64(n))
	}
}

// RecordSolverTimeout records a knapsack solve that timed out.
func (m *Metrics) RecordSolverTimeout(ctx context.Context) {
	m.SolverTimeouts.Add(ctx, 1)
}
