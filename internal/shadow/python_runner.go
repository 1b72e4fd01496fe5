package shadow

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/roadwatch/budget-go/internal/domain"
)

// PythonRunner invokes the legacy Python optimizer and captures JSON output.
type PythonRunner struct {
	PythonPath string
	Module     string
}

// Run executes the legacy optimizer on the same records file and returns its
// JSON output.
func (r *PythonRunner) Run(ctx context.Context, recordsPath string, totalBudget int64, strategy domain.Strategy) ([]byte, error) {
	module := r.Module
	if module == "" {
		module = "roadwatch.budget_optimizer"
	}
	args := []string{
		"-m", module,
		"--input", recordsPath,
		"--budget", fmt.Sprintf("%d", totalBudget),
		"--strategy", string(strategy),
		"--json-output",
	}
	cmd := exec.CommandContext(ctx, r.PythonPath, args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("python optimizer failed: %s\n%s", err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("python optimizer: %w", err)
	}
	return out, nil
}
