// Package comps selects comparable sales for a subject property and reduces
// them to a representative price-per-square-foot statistic.
package comps

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/geo"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

// Select filters candidates by search radius and sale recency, scores the
// survivors by similarity to the subject, and returns them ranked most
// similar first. If fewer than MinComps survive, the returned set is marked
// Insufficient; it is never silently padded.
//
// Cost is linear in the candidate count; the caller bounds the input.
func Select(subject types.Property, candidates []types.ComparableSale, asOf time.Time, cfg config.Config) (types.ComparableSet, error) {
	if err := subject.Validate(); err != nil {
		return types.ComparableSet{}, err
	}

	cutoff := asOf.AddDate(0, -cfg.Analysis.MonthsBack, 0)

	var scored []types.ScoredComp
	for _, cand := range candidates {
		if err := cand.Validate(); err != nil {
			return types.ComparableSet{}, fmt.Errorf("candidate rejected: %w", err)
		}
		if cand.SaleDate.Before(cutoff) {
			continue
		}
		dist, err := geo.DistanceMiles(subject.Latitude, subject.Longitude, cand.Latitude, cand.Longitude)
		if err != nil {
			return types.ComparableSet{}, fmt.Errorf("candidate %s: %w", cand.ID, err)
		}
		if dist > cfg.Analysis.RadiusMiles {
			continue
		}
		cand.DistanceMiles = dist

		score := similarityScore(subject, cand, cfg.Similarity)
		scored = append(scored, types.ScoredComp{
			ComparableSale: cand,
			Score:          score,
			Weight:         1 / (1 + score),
		})
	}

	// Rank ascending by score; break ties by distance then id so the order is
	// stable regardless of input ordering.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score < scored[j].Score
		}
		if scored[i].DistanceMiles != scored[j].DistanceMiles {
			return scored[i].DistanceMiles < scored[j].DistanceMiles
		}
		return scored[i].ID < scored[j].ID
	})

	if cfg.Analysis.MaxComps > 0 && len(scored) > cfg.Analysis.MaxComps {
		scored = scored[:cfg.Analysis.MaxComps]
	}

	return types.ComparableSet{
		Comps:        scored,
		MinComps:     cfg.Analysis.MinComps,
		Insufficient: len(scored) < cfg.Analysis.MinComps,
	}, nil
}

// similarityScore is a weighted sum of attribute differences; lower = more
// similar. Square footage is normalized by the subject's so the weightings
// are comparable across property sizes.
func similarityScore(subject types.Property, cand types.ComparableSale, w config.Similarity) float64 {
	score := w.SquareFootage * math.Abs(cand.SquareFootage-subject.SquareFootage) / subject.SquareFootage
	score += w.Bedroom * math.Abs(float64(cand.Bedrooms-subject.Bedrooms))
	score += w.Bathroom * math.Abs(cand.Bathrooms-subject.Bathrooms)
	if !strings.EqualFold(cand.Condition, subject.Condition) {
		score += w.Condition
	}
	return score
}
