// Package renovation computes itemized repair-cost estimates from a unit-cost
// catalog and the subject property's condition.
package renovation

import (
	"fmt"
	"strings"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

// perSqftCategories are the catalog buckets scaled by square footage and
// condition. Permitting/holding costs are flat and added separately.
var perSqftCategories = []types.CostCategory{
	types.CategoryStructural,
	types.CategoryCosmetic,
	types.CategorySystems,
}

// Estimate computes the renovation cost for the subject property. Each
// per-sqft category costs unitCost × sqft × conditionMultiplier; flat
// permitting and holding costs are added under the permitting category; the
// contingency buffer is ContingencyRate × the subtotal of everything else.
// A zero-cost category is valid (no work needed in that bucket).
func Estimate(subject types.Property, cfg config.Renovation) (types.RenovationEstimate, error) {
	if err := subject.Validate(); err != nil {
		return types.RenovationEstimate{}, err
	}
	if cfg.ContingencyRate < 0 {
		return types.RenovationEstimate{}, fmt.Errorf("contingency rate must not be negative, got %g", cfg.ContingencyRate)
	}

	multiplier := cfg.DefaultMultiplier
	if m, ok := cfg.ConditionMultipliers[strings.ToLower(strings.TrimSpace(subject.Condition))]; ok {
		multiplier = m
	}

	categories := make(map[types.CostCategory]float64, len(perSqftCategories)+2)
	subtotal := 0.0
	for _, cat := range perSqftCategories {
		unit := cfg.CostPerSqft[string(cat)]
		cost := unit * subject.SquareFootage * multiplier
		if cost < 0 {
			return types.RenovationEstimate{}, fmt.Errorf("renovation category %s computed a negative cost (%g)", cat, cost)
		}
		categories[cat] = cost
		subtotal += cost
	}

	flat := cfg.PermitFee + cfg.HoldingCost
	if flat < 0 {
		return types.RenovationEstimate{}, fmt.Errorf("flat permitting/holding costs must not be negative, got %g", flat)
	}
	categories[types.CategoryPermitting] = flat
	subtotal += flat

	contingency := cfg.ContingencyRate * subtotal
	categories[types.CategoryContingency] = contingency

	return types.RenovationEstimate{
		Categories:      categories,
		ContingencyRate: cfg.ContingencyRate,
		Total:           subtotal + contingency,
	}, nil
}
