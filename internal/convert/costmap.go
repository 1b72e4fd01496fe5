package convert

import "math"

// repairCostBySeverity maps an integer severity score (0-10 scale) to a
// typical repair cost in Naira, calibrated against Lagos State maintenance
// rates.
var repairCostBySeverity = map[int]int64{
	0:  0,
	1:  50_000,
	2:  75_000,
	3:  150_000,
	4:  250_000,
	5:  400_000,
	6:  600_000,
	7:  900_000,
	8:  1_500_000,
	9:  2_500_000,
	10: 4_000_000,
}

// fallbackRepairCost is used for scores outside the table.
const fallbackRepairCost int64 = 500_000

// CostFromScore estimates a repair cost from a severity score on the 0-10
// scale. locationFactor scales the cost for high-traffic areas and is
// clamped to [1.0, 1.5]; zero means "not supplied" and is treated as 1.0.
// Deterministic: the historical random cost variation is intentionally gone.
func CostFromScore(score, locationFactor float64) int64 {
	rounded := int(math.Round(score))
	if rounded <= 0 {
		return 0
	}

	base, ok := repairCostBySeverity[rounded]
	if !ok {
		base = fallbackRepairCost
	}

	factor := locationFactor
	if factor == 0 {
		factor = 1.0
	}
	factor = math.Min(math.Max(factor, 1.0), 1.5)

	return int64(math.Round(float64(base) * factor))
}
