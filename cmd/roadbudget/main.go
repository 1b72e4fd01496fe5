// Command roadbudget runs road-repair budget optimization over JSON records.
//
// Usage:
//
//	roadbudget optimize --input FILE            allocate a budget across repairs
//	roadbudget select   --input FILE --budget N pick a 0/1 repair subset (knapsack)
//	roadbudget compare  --input FILE            run every allocation strategy
//	roadbudget convert  --input FILE            convert raw damage records
//	roadbudget estimate --input FILE            price a single repair
//
// Input is a JSON file, or stdin when --input is "-" or omitted. Results are
// written to stdout as JSON; logs go to stderr.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/roadwatch/budget-go/internal/allocation"
	"github.com/roadwatch/budget-go/internal/config"
	"github.com/roadwatch/budget-go/internal/convert"
	"github.com/roadwatch/budget-go/internal/domain"
	"github.com/roadwatch/budget-go/internal/knapsack"
	"github.com/roadwatch/budget-go/internal/observability"
	"github.com/roadwatch/budget-go/internal/pricing"
	"github.com/roadwatch/budget-go/internal/report"
)

type app struct {
	cfg     config.Config
	budget  domain.BudgetConfig
	metrics *observability.Metrics
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := observability.InitLogger(cfg.LogLevel)

	ctx := context.Background()
	if cfg.OTelEnabled {
		shutdown, err := observability.InitTracer(ctx, cfg.ServiceName)
		if err != nil {
			logger.Error("tracing init failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("tracer shutdown", "error", err)
			}
		}()
	}

	budget, err := config.LoadBudgetConfig(cfg.BudgetFile, cfg.SolveTimeout)
	if err != nil {
		logger.Error("budget config", "error", err)
		os.Exit(1)
	}
	metrics, err := observability.NewMetrics()
	if err != nil {
		logger.Error("metrics init failed", "error", err)
		os.Exit(1)
	}

	a := &app{cfg: cfg, budget: budget, metrics: metrics}

	switch os.Args[1] {
	case "optimize":
		a.cmdOptimize(ctx, os.Args[2:])
	case "select":
		a.cmdSelect(ctx, os.Args[2:])
	case "compare":
		a.cmdCompare(ctx, os.Args[2:])
	case "convert":
		a.cmdConvert(ctx, os.Args[2:])
	case "estimate":
		a.cmdEstimate(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: roadbudget <optimize|select|compare|convert|estimate> [flags]")
	os.Exit(1)
}

// optimizeRequest is the caller contract for the allocation path.
type optimizeRequest struct {
	Repairs     []domain.RepairInput `json:"repairs"`
	TotalBudget int64                `json:"total_budget"`
	Strategy    domain.Strategy      `json:"strategy"`
}

// skippedRepair mirrors convert.SkippedRecord for repairs that fail pricing.
type skippedRepair struct {
	Index  int    `json:"index"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

func (a *app) priceAll(inputs []domain.RepairInput) ([]domain.RepairRequest, []skippedRepair, error) {
	est, err := pricing.NewEstimator(a.budget)
	if err != nil {
		return nil, nil, err
	}
	repairs := make([]domain.RepairRequest, 0, len(inputs))
	skipped := []skippedRepair{}
	for i, in := range inputs {
		r, err := est.NewRepair(in)
		if err != nil {
			skipped = append(skipped, skippedRepair{Index: i, ID: in.ID, Reason: err.Error()})
			continue
		}
		repairs = append(repairs, r)
	}
	return repairs, skipped, nil
}

func (a *app) cmdOptimize(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	input := fs.String("input", "-", "request JSON file, - for stdin")
	strategyFlag := fs.String("strategy", "", "override the request strategy")
	budgetFlag := fs.Int64("budget", 0, "override the request total budget")
	parseFlags(fs, args)

	var req optimizeRequest
	decodeInput(*input, &req)
	if *strategyFlag != "" {
		req.Strategy = domain.Strategy(*strategyFlag)
	}
	if *budgetFlag > 0 {
		req.TotalBudget = *budgetFlag
	}
	if req.Strategy == "" {
		req.Strategy = domain.StrategyPriorityWeighted
	}

	repairs, skipped, err := a.priceAll(req.Repairs)
	if err != nil {
		fatal(err)
	}

	start := time.Now()
	allocs, err := allocation.Optimize(repairs, req.TotalBudget, req.Strategy)
	if err != nil {
		fatal(err)
	}
	rep := report.Generate(allocs, req.TotalBudget)
	a.metrics.RecordOptimization(ctx, string(req.Strategy), time.Since(start), rep.TotalAllocated)
	a.metrics.RecordSkipped(ctx, len(skipped))

	slog.Info("optimization complete",
		"strategy", req.Strategy,
		"repairs", len(repairs),
		"skipped", len(skipped),
		"allocated", rep.TotalAllocated,
	)

	writeResult(map[string]any{
		"allocations": allocs,
		"report":      rep,
		"skipped":     skipped,
	})
}

// selectRequest is the caller contract for the knapsack path.
type selectRequest struct {
	Records     []convert.InboundRecord `json:"records"`
	TotalBudget int64                   `json:"total_budget"`
}

func (a *app) cmdSelect(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("select", flag.ExitOnError)
	input := fs.String("input", "-", "request JSON file, - for stdin")
	budgetFlag := fs.Int64("budget", 0, "override the request total budget")
	parseFlags(fs, args)

	var req selectRequest
	decodeInput(*input, &req)
	if *budgetFlag > 0 {
		req.TotalBudget = *budgetFlag
	}

	candidates, skipped := convert.BatchCandidates(req.Records)
	a.metrics.RecordSkipped(ctx, len(skipped))

	start := time.Now()
	result := knapsack.Select(ctx, candidates, req.TotalBudget, a.budget.SolveTimeout)
	a.metrics.RecordOptimization(ctx, "knapsack", time.Since(start), result.TotalCost)
	if result.Status == domain.SelectionTimeout {
		a.metrics.RecordSolverTimeout(ctx)
		slog.Warn("knapsack solve timed out; returning best selection found",
			"timeout", a.budget.SolveTimeout)
	}

	slog.Info("selection complete",
		"status", result.Status,
		"selected", result.RepairsCount,
		"total_cost", result.TotalCost,
	)

	writeResult(map[string]any{
		"selection": result,
		"skipped":   skipped,
	})
}

func (a *app) cmdCompare(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	input := fs.String("input", "-", "request JSON file, - for stdin")
	budgetFlag := fs.Int64("budget", 0, "override the request total budget")
	parseFlags(fs, args)

	var req optimizeRequest
	decodeInput(*input, &req)
	if *budgetFlag > 0 {
		req.TotalBudget = *budgetFlag
	}

	repairs, skipped, err := a.priceAll(req.Repairs)
	if err != nil {
		fatal(err)
	}
	a.metrics.RecordSkipped(ctx, len(skipped))

	start := time.Now()
	outcomes, err := allocation.CompareStrategies(ctx, repairs, req.TotalBudget)
	if err != nil {
		fatal(err)
	}
	a.metrics.RecordOptimization(ctx, "compare", time.Since(start), 0)

	writeResult(map[string]any{
		"results": outcomes,
		"skipped": skipped,
	})
}

func (a *app) cmdConvert(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	input := fs.String("input", "-", "records JSON file, - for stdin")
	parseFlags(fs, args)

	var records []convert.InboundRecord
	decodeInput(*input, &records)

	inputs, skipped := convert.Batch(records)
	a.metrics.RecordSkipped(ctx, len(skipped))

	writeResult(map[string]any{
		"repairs": inputs,
		"skipped": skipped,
		"stats":   convert.Stats(records),
	})
}

func (a *app) cmdEstimate(args []string) {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	input := fs.String("input", "-", "repair JSON file, - for stdin")
	parseFlags(fs, args)

	var in domain.RepairInput
	decodeInput(*input, &in)

	est, err := pricing.NewEstimator(a.budget)
	if err != nil {
		fatal(err)
	}
	repair, err := est.NewRepair(in)
	if err != nil {
		fatal(err)
	}
	writeResult(repair)
}

func parseFlags(fs *flag.FlagSet, args []string) {
	// ExitOnError makes this infallible.
	_ = fs.Parse(args)
}

func decodeInput(path string, target any) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(target); err != nil {
		fatal(fmt.Errorf("decode input: %w", err))
	}
}

func writeResult(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	slog.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
