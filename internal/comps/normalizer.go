package comps

import (
	"fmt"
	"math"
	"sort"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

// InsufficientCompsError reports that fewer comps survived filtering than the
// configured minimum. Callers may relax the search parameters and retry, or
// accept a low-confidence estimate instead.
type InsufficientCompsError struct {
	Found    int
	Required int
}

func (e *InsufficientCompsError) Error() string {
	return fmt.Sprintf("insufficient comparable sales: found %d, need %d", e.Found, e.Required)
}

// Normalize reduces a comp set to a weighted-median price per square foot.
//
// Price-per-sqft outliers further than outlierStdDev standard deviations from
// the sample median are rejected first (0 disables rejection). The median is
// weighted by each comp's similarity weight, with ties broken by the more
// recent sale. The result is invariant under reordering of the input comps.
//
// An empty set always fails with InsufficientCompsError. A non-empty set
// marked Insufficient fails only when strict is true; otherwise the surviving
// comps produce a best-effort statistic for a low-confidence estimate.
func Normalize(set types.ComparableSet, outlierStdDev float64, strict bool) (types.PriceStats, error) {
	if len(set.Comps) == 0 {
		return types.PriceStats{}, &InsufficientCompsError{Found: 0, Required: set.MinComps}
	}
	if strict && set.Insufficient {
		return types.PriceStats{}, &InsufficientCompsError{Found: len(set.Comps), Required: set.MinComps}
	}

	kept, rejected := rejectOutliers(set.Comps, outlierStdDev)

	// Sort by $/sqft ascending for the median walk. Equal prices: the more
	// recent sale votes first, then id for determinism.
	sorted := make([]types.ScoredComp, len(kept))
	copy(sorted, kept)
	sort.Slice(sorted, func(i, j int) bool {
		pi, pj := sorted[i].PricePerSqft(), sorted[j].PricePerSqft()
		if pi != pj {
			return pi < pj
		}
		if !sorted[i].SaleDate.Equal(sorted[j].SaleDate) {
			return sorted[i].SaleDate.After(sorted[j].SaleDate)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var totalWeight float64
	for _, c := range sorted {
		totalWeight += c.Weight
	}

	median := sorted[len(sorted)-1].PricePerSqft()
	half := totalWeight / 2
	cum := 0.0
	for _, c := range sorted {
		cum += c.Weight
		if cum >= half {
			median = c.PricePerSqft()
			break
		}
	}

	return types.PriceStats{
		MedianPricePerSqft: median,
		SampleSize:         len(sorted),
		WeightedStdDev:     weightedStdDev(sorted, totalWeight),
		OutliersRejected:   rejected,
	}, nil
}

// rejectOutliers drops comps whose $/sqft deviates from the sample median by
// more than bound standard deviations. The median is the robust center here:
// in small samples an extreme comp drags the mean toward itself far enough to
// escape its own rejection band.
func rejectOutliers(comps []types.ScoredComp, bound float64) (kept []types.ScoredComp, rejected int) {
	if bound <= 0 || len(comps) < 3 {
		return comps, 0
	}

	prices := make([]float64, len(comps))
	for i, c := range comps {
		prices[i] = c.PricePerSqft()
	}
	center := simpleMedian(prices)

	mean := 0.0
	for _, p := range prices {
		mean += p
	}
	mean /= float64(len(prices))
	variance := 0.0
	for _, p := range prices {
		variance += (p - mean) * (p - mean)
	}
	std := math.Sqrt(variance / float64(len(prices)))
	if std == 0 {
		return comps, 0
	}

	for _, c := range comps {
		if math.Abs(c.PricePerSqft()-center) > bound*std {
			rejected++
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		// Degenerate bound; keep the original sample rather than none.
		return comps, 0
	}
	return kept, rejected
}

func simpleMedian(vals []float64) float64 {
	s := make([]float64, len(vals))
	copy(s, vals)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// weightedStdDev measures $/sqft dispersion about the weighted mean, with
// each comp voting its similarity weight.
func weightedStdDev(comps []types.ScoredComp, totalWeight float64) float64 {
	if totalWeight == 0 {
		return 0
	}
	mean := 0.0
	for _, c := range comps {
		mean += c.Weight * c.PricePerSqft()
	}
	mean /= totalWeight

	variance := 0.0
	for _, c := range comps {
		d := c.PricePerSqft() - mean
		variance += c.Weight * d * d
	}
	return math.Sqrt(variance / totalWeight)
}
