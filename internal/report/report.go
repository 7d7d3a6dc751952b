// Package report renders completed analyses for the terminal, Markdown files,
// and JSON consumers. Rendering never mutates the result.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/analysis"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

const (
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorReset = "\033[0m"
)

// Currency formats a dollar amount with thousands separators and no cents.
func Currency(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	// Insert thousands separators right to left.
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := "$" + strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Text renders the analysis in the interactive-terminal layout with ANSI
// colors for the verdict line.
func Text(res *analysis.Result) string {
	var b strings.Builder
	line := strings.Repeat("-", 80)
	p := res.Subject
	v := res.Valuation
	r := res.Renovation
	f := res.Feasibility

	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Address           : %s\n", p.FullAddress())
	fmt.Fprintf(&b, "Beds/Bath         : %d / %g\n", p.Bedrooms, p.Bathrooms)
	fmt.Fprintf(&b, "Living Area (sf)  : %.0f\n", p.SquareFootage)
	if p.YearBuilt > 0 {
		fmt.Fprintf(&b, "Year Built        : %d\n", p.YearBuilt)
	}
	if p.Condition != "" {
		fmt.Fprintf(&b, "Condition         : %s\n", p.Condition)
	}
	if p.Zoning != "" {
		fmt.Fprintf(&b, "Zoning            : %s\n", p.Zoning)
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Comps Used        : %d", v.SampleSize)
	if res.Stats.OutliersRejected > 0 {
		fmt.Fprintf(&b, " (%d outlier(s) rejected)", res.Stats.OutliersRejected)
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Median $/sqft     : %s\n", Currency(v.MedianPricePerSqft))
	fmt.Fprintf(&b, "Confidence        : %s\n", v.Confidence)
	if v.Insufficient {
		fmt.Fprintf(&b, "%s[Warning]%s fewer comps than the configured minimum; best-effort estimate\n", colorRed, colorReset)
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Estimated ARV     : %s\n", Currency(v.Expected))
	fmt.Fprintf(&b, "ARV Range         : %s - %s\n", Currency(v.Low), Currency(v.High))
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Renovation        : %s total (%.0f%% contingency)\n", Currency(r.Total), r.ContingencyRate*100)
	for _, cat := range []types.CostCategory{
		types.CategoryStructural, types.CategoryCosmetic, types.CategorySystems,
		types.CategoryPermitting, types.CategoryContingency,
	} {
		fmt.Fprintf(&b, "  %-15s : %s\n", cat, Currency(r.Categories[cat]))
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Purchase Price    : %s\n", Currency(f.PurchasePrice))
	fmt.Fprintf(&b, "Total Investment  : %s\n", Currency(f.TotalInvestment))
	fmt.Fprintf(&b, "Potential Profit  : %s\n", Currency(f.Profit))
	fmt.Fprintf(&b, "ROI               : %s\n", percent(f.ROIPercent))
	fmt.Fprintf(&b, "70%% Rule Max      : %s\n", Currency(f.MaxPurchasePrice70))
	fmt.Fprintf(&b, "Risk Score        : %.0f / 100\n", f.RiskScore)

	if goodDeal(f) {
		fmt.Fprintf(&b, "Verdict           : %spromising at this price%s\n", colorGreen, colorReset)
	} else {
		fmt.Fprintf(&b, "Verdict           : %sdoes not meet investment criteria%s\n", colorRed, colorReset)
	}
	fmt.Fprintln(&b, line)
	return b.String()
}

// Markdown renders the full analysis report.
func Markdown(res *analysis.Result) string {
	var b strings.Builder
	p := res.Subject
	v := res.Valuation
	r := res.Renovation
	f := res.Feasibility

	fmt.Fprintf(&b, "# Real Estate ARV Analysis Report\n\n")
	fmt.Fprintf(&b, "## Property: %s\n\n", p.FullAddress())
	fmt.Fprintf(&b, "*Analysis Date: %s*\n\n", res.GeneratedAt.Format("January 2, 2006"))

	fmt.Fprintf(&b, "## Property Details\n\n")
	fmt.Fprintf(&b, "| Feature | Value |\n|---------|-------|\n")
	fmt.Fprintf(&b, "| Address | %s |\n", p.FullAddress())
	fmt.Fprintf(&b, "| Bedrooms | %d |\n", p.Bedrooms)
	fmt.Fprintf(&b, "| Bathrooms | %g |\n", p.Bathrooms)
	fmt.Fprintf(&b, "| Square Footage | %.0f sq ft |\n", p.SquareFootage)
	if p.YearBuilt > 0 {
		fmt.Fprintf(&b, "| Year Built | %d |\n", p.YearBuilt)
	}
	if p.Condition != "" {
		fmt.Fprintf(&b, "| Condition | %s |\n", p.Condition)
	}
	if p.Zoning != "" {
		fmt.Fprintf(&b, "| Zoning | %s |\n", p.Zoning)
	}
	if !p.LastSaleDate.IsZero() && p.LastSalePrice > 0 {
		fmt.Fprintf(&b, "| Last Sale | %s (%s) |\n", Currency(p.LastSalePrice), p.LastSaleDate.Format("01/02/2006"))
	}

	fmt.Fprintf(&b, "\n## After Repair Value (ARV) Analysis\n\n")
	fmt.Fprintf(&b, "**ARV Estimate: %s**\n\n", Currency(v.Expected))
	fmt.Fprintf(&b, "*Confidence Level: %s*\n\n", v.Confidence)
	fmt.Fprintf(&b, "ARV Range: %s - %s\n\n", Currency(v.Low), Currency(v.High))
	fmt.Fprintf(&b, "Median Price per Square Foot: $%.2f (%d comps", v.MedianPricePerSqft, v.SampleSize)
	if res.Stats.OutliersRejected > 0 {
		fmt.Fprintf(&b, ", %d outlier(s) rejected", res.Stats.OutliersRejected)
	}
	fmt.Fprintf(&b, ")\n\n")

	fmt.Fprintf(&b, "## Renovation Cost Breakdown\n\n")
	fmt.Fprintf(&b, "| Category | Cost |\n|----------|------|\n")
	for _, cat := range []types.CostCategory{
		types.CategoryStructural, types.CategoryCosmetic, types.CategorySystems, types.CategoryPermitting,
	} {
		fmt.Fprintf(&b, "| %s | %s |\n", title(string(cat)), Currency(r.Categories[cat]))
	}
	fmt.Fprintf(&b, "| Contingency (%.0f%%) | %s |\n", r.ContingencyRate*100, Currency(r.Categories[types.CategoryContingency]))
	fmt.Fprintf(&b, "| **Total Renovation** | **%s** |\n\n", Currency(r.Total))

	fmt.Fprintf(&b, "## Investment Analysis\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| Purchase Price | %s |\n", Currency(f.PurchasePrice))
	fmt.Fprintf(&b, "| Renovation Cost | %s |\n", Currency(f.RenovationCost))
	fmt.Fprintf(&b, "| Total Investment | %s |\n", Currency(f.TotalInvestment))
	fmt.Fprintf(&b, "| After Repair Value | %s |\n", Currency(f.ARV))
	fmt.Fprintf(&b, "| Potential Profit | %s |\n", Currency(f.Profit))
	fmt.Fprintf(&b, "| Return on Investment | %s |\n", percent(f.ROIPercent))
	fmt.Fprintf(&b, "| Risk Score | %.0f / 100 |\n\n", f.RiskScore)

	fmt.Fprintf(&b, "### 70%% Rule Analysis\n\n")
	fmt.Fprintf(&b, "**Maximum Purchase Price (70%% Rule): %s**\n\n", Currency(f.MaxPurchasePrice70))
	if f.ARV > 0 {
		ratio := f.PurchasePrice / f.ARV * 100
		qualifier := "close to"
		if ratio > 75 {
			qualifier = "significantly higher than"
		}
		fmt.Fprintf(&b, "Current purchase price is %s of ARV, which is %s the recommended 70%%.\n\n", percent(ratio), qualifier)
	}

	fmt.Fprintf(&b, "## Conclusion\n\n")
	if goodDeal(f) {
		fmt.Fprintf(&b, "This property appears to be a promising investment at the current price of %s: ", Currency(f.PurchasePrice))
		fmt.Fprintf(&b, "the projected ROI is %s and the purchase price is within 10%% of the 70%% rule recommendation (%s).\n",
			percent(f.ROIPercent), Currency(f.MaxPurchasePrice70))
	} else {
		fmt.Fprintf(&b, "This property does not appear to be a good investment at the current price of %s. ", Currency(f.PurchasePrice))
		fmt.Fprintf(&b, "Consider negotiating the purchase price down closer to the 70%% rule recommendation of %s.\n",
			Currency(f.MaxPurchasePrice70))
	}
	return b.String()
}

// JSON marshals the full result as an indented document.
func JSON(res *analysis.Result) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}

// goodDeal mirrors the conclusion heuristic: ROI above 15% and a purchase
// price within 10% of the 70%-rule cap.
func goodDeal(f types.FeasibilityReport) bool {
	return f.ROIPercent > 15 && f.PurchasePrice <= f.MaxPurchasePrice70*1.1
}
