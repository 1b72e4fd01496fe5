package shadow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roadwatch/budget-go/internal/domain"
)

func TestPythonRunner_MissingInterpreter(t *testing.T) {
	t.Parallel()
	runner := &PythonRunner{PythonPath: "/nonexistent/python3"}
	_, err := runner.Run(context.Background(), "records.json", 1_000_000, domain.StrategyProportional)
	assert.Error(t, err)
}

func TestPythonRunner_DefaultModule(t *testing.T) {
	t.Parallel()
	// Echo the argv back so we can see how the interpreter is invoked.
	runner := &PythonRunner{PythonPath: "echo"}
	out, err := runner.Run(context.Background(), "records.json", 1_000_000, domain.StrategyHybrid)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "roadwatch.budget_optimizer")
	assert.Contains(t, string(out), "--strategy hybrid")
	assert.Contains(t, string(out), "--budget 1000000")
}
