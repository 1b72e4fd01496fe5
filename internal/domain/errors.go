package domain

import "errors"

// Per-repair construction failures. The batch converter recovers from these
// by routing the offending record to a skipped list; they never abort a batch.
var (
	// ErrInvalidDimension signals a repair dimension that is missing,
	// zero, or negative.
	ErrInvalidDimension = errors.New("invalid repair dimension")

	// ErrInvalidCategory signals a severity or urgency value outside its enum.
	ErrInvalidCategory = errors.New("invalid severity or urgency category")
)

// Request-level optimization failures. These abort the whole call.
var (
	// ErrNoRepairs signals an empty repair list.
	ErrNoRepairs = errors.New("no repairs provided")

	// ErrNonPositiveBudget signals a total budget <= 0.
	ErrNonPositiveBudget = errors.New("total budget must be positive")

	// ErrUnknownStrategy signals an unrecognized allocation strategy name.
	ErrUnknownStrategy = errors.New("unknown allocation strategy")

	// ErrInsufficientCriticalBudget signals that the hybrid strategy cannot
	// fully fund all critical repairs within the total budget.
	ErrInsufficientCriticalBudget = errors.New("critical repairs exceed total budget")

	// ErrZeroWeight signals that the allocation denominator (total weighted
	// or total estimated cost) is zero, so proportional shares are undefined.
	ErrZeroWeight = errors.New("total allocation weight is zero")
)
