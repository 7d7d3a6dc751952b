package valuation

import (
	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

// Analyze applies the 70% rule, ROI, and risk scoring to a completed
// valuation. Pure computation; no I/O.
func Analyze(purchasePrice float64, val types.ValuationResult, reno types.RenovationEstimate, cfg config.Risk) types.FeasibilityReport {
	totalInvestment := purchasePrice + reno.Total
	profit := val.Expected - totalInvestment

	roi := 0.0
	if totalInvestment != 0 {
		roi = profit / totalInvestment * 100
	}

	return types.FeasibilityReport{
		PurchasePrice:      purchasePrice,
		RenovationCost:     reno.Total,
		TotalInvestment:    totalInvestment,
		ARV:                val.Expected,
		Profit:             profit,
		ROIPercent:         roi,
		MaxPurchasePrice70: 0.70*val.Expected - reno.Total,
		RiskScore:          riskScore(purchasePrice, val, cfg),
	}
}

// riskScore combines three normalized components (price ratio, confidence,
// sample size) under the configured weights. With weights summing to 100 the
// score spans 0 (safe) to 100 (riskiest); it is clamped either way.
func riskScore(purchasePrice float64, val types.ValuationResult, w config.Risk) float64 {
	ratio := 1.0
	if val.Expected > 0 {
		ratio = clamp01(purchasePrice / val.Expected)
	}

	conf := 1.0
	switch val.Confidence {
	case types.ConfidenceHigh:
		conf = 0.2
	case types.ConfidenceModerate:
		conf = 0.5
	}

	sample := clamp01(1 - float64(val.SampleSize)/10)

	score := w.PriceRatio*ratio + w.Confidence*conf + w.SampleSize*sample
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
