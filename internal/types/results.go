package types

// ScoredComp is a comparable accepted by the selector, tagged with its
// similarity score (lower = more similar) and the derived weight
// 1/(1+score), bounded in (0,1].
type ScoredComp struct {
	ComparableSale
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// ComparableSet is the ordered comp set produced by the selector, ranked most
// similar first. Insufficient is set when fewer than MinComps candidates
// survived filtering; the surviving comps are still carried so downstream
// stages can produce a best-effort, low-confidence estimate.
type ComparableSet struct {
	Comps        []ScoredComp `json:"comps"`
	MinComps     int          `json:"min_comps"`
	Insufficient bool         `json:"insufficient"`
}

// PriceStats is the normalized price statistic derived from a comp set.
type PriceStats struct {
	MedianPricePerSqft float64 `json:"median_price_per_sqft"`
	SampleSize         int     `json:"sample_size"`
	WeightedStdDev     float64 `json:"weighted_std_dev"`
	OutliersRejected   int     `json:"outliers_rejected"`
}

// CostCategory identifies a renovation cost bucket.
type CostCategory string

const (
	CategoryStructural  CostCategory = "structural"
	CategoryCosmetic    CostCategory = "cosmetic"
	CategorySystems     CostCategory = "systems"
	CategoryPermitting  CostCategory = "permitting"
	CategoryContingency CostCategory = "contingency"
)

// RenovationEstimate maps cost categories to currency amounts.
// Invariant: Categories[CategoryContingency] == ContingencyRate × (sum of all
// other categories), and Total is the sum of every category.
type RenovationEstimate struct {
	Categories      map[CostCategory]float64 `json:"categories"`
	ContingencyRate float64                  `json:"contingency_rate"`
	Total           float64                  `json:"total"`
}

// Confidence labels the reliability of a valuation based on comp quantity and
// recency.
type Confidence string

const (
	ConfidenceLow      Confidence = "LOW"
	ConfidenceModerate Confidence = "MODERATE"
	ConfidenceHigh     Confidence = "HIGH"
)

// ValuationResult is the ARV estimate for one analysis run. Computed once per
// run and never mutated.
type ValuationResult struct {
	Expected           float64    `json:"arv"`
	Low                float64    `json:"arv_low"`
	High               float64    `json:"arv_high"`
	MedianPricePerSqft float64    `json:"price_per_sqft"`
	SampleSize         int        `json:"comp_count"`
	Confidence         Confidence `json:"confidence"`
	Insufficient       bool       `json:"insufficient,omitempty"`
}

// FeasibilityReport holds the investment metrics derived from a valuation,
// renovation estimate, and purchase price. Stateless output object.
type FeasibilityReport struct {
	PurchasePrice      float64 `json:"purchase_price"`
	RenovationCost     float64 `json:"renovation_cost"`
	TotalInvestment    float64 `json:"total_investment"`
	ARV                float64 `json:"arv"`
	Profit             float64 `json:"profit"`
	ROIPercent         float64 `json:"roi_percent"`
	MaxPurchasePrice70 float64 `json:"rule_70_max_price"`
	RiskScore          float64 `json:"risk_score"`
}
