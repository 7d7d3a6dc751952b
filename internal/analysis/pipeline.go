// Package analysis wires the valuation engine end to end: comp selection,
// price normalization, renovation estimation, ARV, and feasibility. Each run
// operates on its own immutable input snapshot, so independent analyses are
// safe to execute in parallel.
package analysis

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/comps"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/renovation"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/valuation"
)

// Request is one analysis job: a subject property, its candidate comps, and
// the deal terms. AsOf defaults to the current date; PurchasePrice falls back
// to the subject's last sale price.
type Request struct {
	Subject       types.Property         `json:"subject"`
	Candidates    []types.ComparableSale `json:"comparables"`
	PurchasePrice float64                `json:"purchase_price"`
	AsOf          time.Time              `json:"as_of,omitzero"`
	Strict        bool                   `json:"-"`
}

// Result bundles every artifact of a completed analysis. Field layout matches
// the reporting contract; it serializes without further transformation.
type Result struct {
	Subject     types.Property           `json:"property"`
	Comps       types.ComparableSet      `json:"comparable_set"`
	Stats       types.PriceStats         `json:"price_stats"`
	Valuation   types.ValuationResult    `json:"arv_result"`
	Renovation  types.RenovationEstimate `json:"renovation_costs"`
	Feasibility types.FeasibilityReport  `json:"roi_metrics"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// Run executes one analysis. With Strict set, an insufficient comp set fails
// with InsufficientCompsError; otherwise the surviving comps produce a
// best-effort estimate labeled LOW confidence. An empty comp set always
// fails.
func Run(req Request, cfg config.Config) (*Result, error) {
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	purchase := req.PurchasePrice
	if purchase == 0 {
		purchase = req.Subject.LastSalePrice
	}

	set, err := comps.Select(req.Subject, req.Candidates, asOf, cfg)
	if err != nil {
		return nil, err
	}
	stats, err := comps.Normalize(set, cfg.Analysis.OutlierStdDev, req.Strict)
	if err != nil {
		return nil, err
	}
	reno, err := renovation.Estimate(req.Subject, cfg.Renovation)
	if err != nil {
		return nil, err
	}

	val := valuation.CalculateARV(req.Subject, stats, set, asOf, cfg)
	feas := valuation.Analyze(purchase, val, reno, cfg.Risk)

	return &Result{
		Subject:     req.Subject,
		Comps:       set,
		Stats:       stats,
		Valuation:   val,
		Renovation:  reno,
		Feasibility: feas,
		GeneratedAt: time.Now(),
	}, nil
}

// BatchItem pairs one request's outcome with its error, aligned by index
// with the input slice.
type BatchItem struct {
	Result *Result
	Err    error
}

// RunBatch analyzes independent requests in parallel, at most workers at a
// time (0 means one per request). A failed analysis does not abort the rest;
// cancellation of ctx does.
func RunBatch(ctx context.Context, reqs []Request, cfg config.Config, workers int) []BatchItem {
	items := make([]BatchItem, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i] = BatchItem{Err: err}
				return nil
			}
			res, err := Run(req, cfg)
			items[i] = BatchItem{Result: res, Err: err}
			return nil
		})
	}
	g.Wait()
	return items
}
