// Package config provides application configuration loaded from environment
// variables, plus the budget rates file read with viper.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/roadwatch/budget-go/internal/domain"
)

// Config holds process-level settings. Budget rates live in
// domain.BudgetConfig and are loaded separately.
type Config struct {
	LogLevel       string
	CurrencySymbol string
	ServiceName    string
	OTelEnabled    bool

	// BudgetFile optionally points at a YAML rates file; empty means the
	// built-in default rates.
	BudgetFile string

	SolveTimeout time.Duration
}

// LoadFromEnv reads configuration from environment variables with sensible
// defaults.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		LogLevel:       envOr("ROADBUDGET_LOG_LEVEL", "info"),
		CurrencySymbol: envOr("ROADBUDGET_CURRENCY_SYMBOL", "NGN"),
		ServiceName:    envOr("ROADBUDGET_SERVICE_NAME", "roadbudget"),
		OTelEnabled:    strings.EqualFold(os.Getenv("ROADBUDGET_OTEL_ENABLED"), "true"),
		BudgetFile:     os.Getenv("ROADBUDGET_BUDGET_FILE"),
		SolveTimeout:   5 * time.Second,
	}

	if raw := os.Getenv("ROADBUDGET_SOLVE_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid ROADBUDGET_SOLVE_TIMEOUT %q: %w", raw, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("config: ROADBUDGET_SOLVE_TIMEOUT must be non-negative, got %s", d)
		}
		cfg.SolveTimeout = d
	}

	return cfg, nil
}

// LoadBudgetConfig returns the budget rates, overlaying the YAML file at
// path (when non-empty) onto the defaults. The solver timeout comes from the
// process config, not the rates file.
func LoadBudgetConfig(path string, solveTimeout time.Duration) (domain.BudgetConfig, error) {
	budget := domain.DefaultBudgetConfig()
	budget.SolveTimeout = solveTimeout

	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return domain.BudgetConfig{}, fmt.Errorf("config: read budget file %s: %w", path, err)
		}
		if err := v.Unmarshal(&budget); err != nil {
			return domain.BudgetConfig{}, fmt.Errorf("config: parse budget file %s: %w", path, err)
		}
		if err := canonicalizeWeightKeys(&budget); err != nil {
			return domain.BudgetConfig{}, fmt.Errorf("config: budget file %s: %w", path, err)
		}
	}

	if err := budget.Validate(); err != nil {
		return domain.BudgetConfig{}, fmt.Errorf("config: budget rates: %w", err)
	}
	return budget, nil
}

// canonicalizeWeightKeys rewrites severity and urgency map keys onto their
// enum spellings. Viper lowercases every YAML map key, so a rates file's
// "Severe" arrives as "severe" and would otherwise sit dead in the map next
// to the capitalized default while pricing keeps reading the old weight.
func canonicalizeWeightKeys(budget *domain.BudgetConfig) error {
	for key, val := range budget.SeverityWeights {
		if key.Valid() {
			continue
		}
		canon, ok := matchSeverity(string(key))
		if !ok {
			return fmt.Errorf("unknown severity %q in severity_weights", key)
		}
		budget.SeverityWeights[canon] = val
		delete(budget.SeverityWeights, key)
	}
	for key, val := range budget.UrgencyMultipliers {
		if key.Valid() {
			continue
		}
		canon, ok := matchUrgency(string(key))
		if !ok {
			return fmt.Errorf("unknown urgency %q in urgency_multipliers", key)
		}
		budget.UrgencyMultipliers[canon] = val
		delete(budget.UrgencyMultipliers, key)
	}
	return nil
}

func matchSeverity(raw string) (domain.Severity, bool) {
	for _, s := range []domain.Severity{domain.SeverityMinor, domain.SeverityModerate, domain.SeveritySevere} {
		if strings.EqualFold(raw, string(s)) {
			return s, true
		}
	}
	return "", false
}

func matchUrgency(raw string) (domain.Urgency, bool) {
	for _, u := range []domain.Urgency{domain.UrgencyRoutine, domain.UrgencyUrgent, domain.UrgencyImmediate} {
		if strings.EqualFold(raw, string(u)) {
			return u, true
		}
	}
	return "", false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
