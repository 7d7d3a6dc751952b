package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/analysis"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

func testResult() *analysis.Result {
	return &analysis.Result{
		Subject: types.Property{
			ID:            "subj-1",
			Address:       "123 Main St",
			City:          "Fort Worth",
			State:         "TX",
			ZipCode:       "76109",
			Bedrooms:      3,
			Bathrooms:     2,
			SquareFootage: 1800,
			YearBuilt:     1962,
			Condition:     types.ConditionFair,
			Zoning:        "A-5",
		},
		Comps: types.ComparableSet{MinComps: 3},
		Stats: types.PriceStats{
			MedianPricePerSqft: 205,
			SampleSize:         3,
			WeightedStdDev:     4.08,
			OutliersRejected:   1,
		},
		Valuation: types.ValuationResult{
			Expected:           369000,
			Low:                361656,
			High:               376344,
			MedianPricePerSqft: 205,
			SampleSize:         3,
			Confidence:         types.ConfidenceModerate,
		},
		Renovation: types.RenovationEstimate{
			Categories: map[types.CostCategory]float64{
				types.CategoryStructural:  32400,
				types.CategoryCosmetic:    21600,
				types.CategorySystems:     16200,
				types.CategoryPermitting:  7500,
				types.CategoryContingency: 11655,
			},
			ContingencyRate: 0.15,
			Total:           89355,
		},
		Feasibility: types.FeasibilityReport{
			PurchasePrice:      350000,
			RenovationCost:     89355,
			TotalInvestment:    439355,
			ARV:                369000,
			Profit:             -70355,
			ROIPercent:         -16.01,
			MaxPurchasePrice70: 168945,
			RiskScore:          62,
		},
		GeneratedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{1500, "$1,500"},
		{369000, "$369,000"},
		{1234567, "$1,234,567"},
		{-70355, "-$70,355"},
	}
	for _, tc := range cases {
		if got := Currency(tc.in); got != tc.want {
			t.Errorf("Currency(%g) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestText_ContainsHeadlineNumbers(t *testing.T) {
	out := Text(testResult())
	for _, want := range []string{
		"123 Main St, Fort Worth, TX 76109",
		"$369,000",
		"$361,656 - $376,344",
		"MODERATE",
		"1 outlier(s) rejected",
		"A-5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q", want)
		}
	}
	if !strings.Contains(out, "does not meet investment criteria") {
		t.Error("losing deal did not get a negative verdict")
	}
}

func TestText_WarnsOnInsufficient(t *testing.T) {
	res := testResult()
	res.Valuation.Insufficient = true
	out := Text(res)
	if !strings.Contains(out, "fewer comps than the configured minimum") {
		t.Error("insufficient set not flagged in text report")
	}
}

func TestText_PositiveVerdict(t *testing.T) {
	res := testResult()
	res.Feasibility.ROIPercent = 22
	res.Feasibility.PurchasePrice = 150000
	res.Feasibility.MaxPurchasePrice70 = 168945
	out := Text(res)
	if !strings.Contains(out, "promising at this price") {
		t.Error("profitable deal did not get a positive verdict")
	}
}

func TestMarkdown_Structure(t *testing.T) {
	out := Markdown(testResult())
	for _, heading := range []string{
		"# Real Estate ARV Analysis Report",
		"## Property Details",
		"## After Repair Value (ARV) Analysis",
		"## Renovation Cost Breakdown",
		"## Investment Analysis",
		"### 70% Rule Analysis",
		"## Conclusion",
	} {
		if !strings.Contains(out, heading) {
			t.Errorf("markdown report missing heading %q", heading)
		}
	}
	if !strings.Contains(out, "**ARV Estimate: $369,000**") {
		t.Error("markdown report missing ARV estimate line")
	}
	if !strings.Contains(out, "| Contingency (15%) | $11,655 |") {
		t.Error("markdown report missing contingency row")
	}
}

func TestMarkdown_PriceRatioQualifier(t *testing.T) {
	res := testResult()
	// 350000 / 369000 ≈ 94.9% of ARV, well past the 75% threshold.
	out := Markdown(res)
	if !strings.Contains(out, "significantly higher than") {
		t.Error("high price ratio not called out")
	}

	res.Feasibility.PurchasePrice = 260000
	out = Markdown(res)
	if !strings.Contains(out, "close to") {
		t.Error("reasonable price ratio not described as close")
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	data, err := JSON(testResult())
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	var decoded analysis.Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report JSON does not decode: %v", err)
	}
	if decoded.Valuation.Expected != 369000 {
		t.Errorf("arv = %g after round trip, want 369000", decoded.Valuation.Expected)
	}
	if decoded.Feasibility.MaxPurchasePrice70 != 168945 {
		t.Errorf("rule_70_max_price = %g, want 168945", decoded.Feasibility.MaxPurchasePrice70)
	}
}
