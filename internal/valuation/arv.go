// Package valuation turns a normalized comp price into an ARV estimate and
// derives the investment-feasibility metrics from it.
package valuation

import (
	"time"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

// CalculateARV produces the point estimate and confidence range for the
// subject property. The range width scales with the comp-price dispersion
// (spread factor × relative weighted std dev), not a fixed percentage, so
// tight comp sets yield tight ranges. Deterministic for identical inputs.
func CalculateARV(subject types.Property, stats types.PriceStats, set types.ComparableSet, asOf time.Time, cfg config.Config) types.ValuationResult {
	point := stats.MedianPricePerSqft * subject.SquareFootage

	spread := 0.0
	if stats.MedianPricePerSqft > 0 {
		spread = cfg.Analysis.SpreadFactor * stats.WeightedStdDev / stats.MedianPricePerSqft
	}
	low := point * (1 - spread)
	if low < 0 {
		low = 0
	}
	high := point * (1 + spread)

	return types.ValuationResult{
		Expected:           point,
		Low:                low,
		High:               high,
		MedianPricePerSqft: stats.MedianPricePerSqft,
		SampleSize:         stats.SampleSize,
		Confidence:         confidence(stats, set, asOf, cfg.Analysis),
		Insufficient:       set.Insufficient,
	}
}

// confidence labels the estimate from comp quantity and recency: HIGH needs a
// large sample with every comp inside half the recency window, MODERATE needs
// the configured minimum, everything else (including an insufficient set) is
// LOW.
func confidence(stats types.PriceStats, set types.ComparableSet, asOf time.Time, cfg config.Analysis) types.Confidence {
	if set.Insufficient {
		return types.ConfidenceLow
	}
	if stats.SampleSize >= cfg.HighConfidenceComps && allWithinHalfWindow(set, asOf, cfg.MonthsBack) {
		return types.ConfidenceHigh
	}
	if stats.SampleSize >= cfg.MinComps {
		return types.ConfidenceModerate
	}
	return types.ConfidenceLow
}

func allWithinHalfWindow(set types.ComparableSet, asOf time.Time, monthsBack int) bool {
	halfCutoff := asOf.AddDate(0, 0, -monthsBack*30/2)
	for _, c := range set.Comps {
		if c.SaleDate.Before(halfCutoff) {
			return false
		}
	}
	return true
}
