// shadow-compare runs this optimizer and the legacy Python script on the same
// damage records, diffs the allocation and report outputs, and prints a JSON
// comparison. Exit code 0 = outputs match. 1 = divergence. 2 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/roadwatch/budget-go/internal/config"
	"github.com/roadwatch/budget-go/internal/domain"
	"github.com/roadwatch/budget-go/internal/shadow"
)

func main() {
	input := flag.String("input", "", "path to damage records JSON file (required)")
	budget := flag.Int64("budget", 0, "total budget in Naira (required)")
	strategy := flag.String("strategy", string(domain.StrategyPriorityWeighted), "allocation strategy")
	pythonPath := flag.String("python-path", "python3", "path to Python interpreter")
	goOnly := flag.Bool("go-only", false, "run only the Go optimizer (skip Python comparison)")
	flag.Parse()

	if *input == "" || *budget <= 0 {
		fmt.Fprintln(os.Stderr, "error: --input and a positive --budget are required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Error("config failed", "error", err)
		os.Exit(2)
	}
	budgetCfg, err := config.LoadBudgetConfig(cfg.BudgetFile, cfg.SolveTimeout)
	if err != nil {
		logger.Error("budget config failed", "error", err)
		os.Exit(2)
	}

	logger.Info("running Go optimizer", "input", *input, "budget", *budget, "strategy", *strategy)
	goRunner := &shadow.GoRunner{Budget: budgetCfg}
	goJSON, err := goRunner.Run(ctx, *input, *budget, domain.Strategy(*strategy))
	if err != nil {
		logger.Error("Go optimizer failed", "error", err)
		os.Exit(2)
	}

	if *goOnly {
		fmt.Println(string(goJSON))
		return
	}

	logger.Info("running legacy optimizer", "python", *pythonPath)
	pyRunner := &shadow.PythonRunner{PythonPath: *pythonPath}
	pyJSON, err := pyRunner.Run(ctx, *input, *budget, domain.Strategy(*strategy))
	if err != nil {
		logger.Error("legacy optimizer failed", "error", err)
		os.Exit(2)
	}

	result, err := shadow.Compare(goJSON, pyJSON)
	if err != nil {
		logger.Error("comparison failed", "error", err)
		os.Exit(2)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("marshal result failed", "error", err)
		os.Exit(2)
	}
	fmt.Println(string(out))

	if !result.AllMatch {
		logger.Warn("divergence detected", "summary", result.Summary)
		os.Exit(1)
	}

	logger.Info("outputs match")
}
