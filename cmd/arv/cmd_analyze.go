package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/analysis"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/cache"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/database"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/dataset"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/zoning"
)

var analyzeFlags struct {
	file        string
	address     string
	price       float64
	format      string
	output      string
	strict      bool
	noCache     bool
	save        bool
	interactive bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [request-file]",
	Short: "Analyze one property and report ARV and feasibility",
	Long: `Analyze a subject property against its candidate comparable sales.

Input is either a JSON request file (subject + comparables, see the dataset
package) or a property address looked up in the configured sales database:

  arv analyze deal.json
  arv analyze --address "123 MAIN ST" --price 350000

Database credentials are read from DB_* environment variables or a .env file
in the working directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.file, "file", "", "Path to JSON analysis request")
	f.StringVar(&analyzeFlags.address, "address", "", "Subject address to look up in the sales database")
	f.Float64Var(&analyzeFlags.price, "price", 0, "Purchase price under consideration (default: subject's last sale price)")
	f.StringVarP(&analyzeFlags.format, "format", "f", "text", "Output format: text, markdown, or json")
	f.StringVarP(&analyzeFlags.output, "output", "o", "", "Write the report to a file instead of stdout")
	f.BoolVar(&analyzeFlags.strict, "strict", false, "Fail when fewer comps than the configured minimum survive filtering")
	f.BoolVar(&analyzeFlags.noCache, "no-cache", false, "Skip the result cache")
	f.BoolVar(&analyzeFlags.save, "save", false, "Save the property to the leads list")
	f.BoolVarP(&analyzeFlags.interactive, "interactive", "i", false, "Browse the ranked comp set after the report")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	file := analyzeFlags.file
	if file == "" && len(args) > 0 {
		file = args[0]
	}
	if file == "" && analyzeFlags.address == "" {
		return fmt.Errorf("a request file or --address is required")
	}

	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var req analysis.Request
	if file != "" {
		req, err = dataset.Load(file)
		if err != nil {
			return err
		}
	} else {
		req, err = loadFromDatabase(ctx, analyzeFlags.address, cfg)
		if err != nil {
			return err
		}
	}
	if analyzeFlags.price > 0 {
		req.PurchasePrice = analyzeFlags.price
	}
	req.Strict = analyzeFlags.strict

	store := cache.New(cfg.Cache)
	if !analyzeFlags.noCache {
		if res, ok := store.Get(ctx, req.Subject.Address); ok {
			slog.Debug("serving cached analysis", "address", req.Subject.Address)
			return finishAnalyze(res)
		}
	}

	annotateZoning(&req, cfg)

	start := time.Now()
	res, err := analysis.Run(req, cfg)
	if err != nil {
		return err
	}
	slog.Debug("analysis complete",
		"address", req.Subject.Address,
		"comps", res.Valuation.SampleSize,
		"elapsed", time.Since(start).Truncate(time.Millisecond))

	if !analyzeFlags.noCache {
		if err := store.Set(ctx, req.Subject.Address, res); err != nil {
			slog.Warn("cache write failed", "error", err)
		}
	}
	return finishAnalyze(res)
}

func finishAnalyze(res *analysis.Result) error {
	if err := writeResult(res, analyzeFlags.format, analyzeFlags.output); err != nil {
		return err
	}
	if analyzeFlags.save {
		if err := saveLead(res); err != nil {
			return fmt.Errorf("failed to save lead: %w", err)
		}
		fmt.Println("Lead saved.")
	}
	if analyzeFlags.interactive {
		browseComps(res.Comps)
	}
	return nil
}

// loadFromDatabase builds an analysis request from the sales database: the
// subject record by address, then every candidate sale inside the search box
// and recency window.
func loadFromDatabase(ctx context.Context, address string, cfg config.Config) (analysis.Request, error) {
	if cfg.Database.Host == "" {
		return analysis.Request{}, fmt.Errorf("no sales database configured (set DB_HOST or use a request file)")
	}
	db, err := database.New(cfg.Database)
	if err != nil {
		return analysis.Request{}, err
	}
	defer db.Close()

	subject, err := db.SubjectByAddress(ctx, address)
	if err != nil {
		return analysis.Request{}, err
	}
	if subject == nil {
		return analysis.Request{}, fmt.Errorf("no property found for address: %s", address)
	}

	asOf := time.Now()
	since := asOf.AddDate(0, -cfg.Analysis.MonthsBack, 0)
	candidates, err := db.CandidatesNear(ctx, subject.Latitude, subject.Longitude, cfg.Analysis.RadiusMiles, since)
	if err != nil {
		return analysis.Request{}, err
	}
	slog.Debug("candidates fetched", "address", address, "count", len(candidates))

	return analysis.Request{
		Subject:    *subject,
		Candidates: candidates,
		AsOf:       asOf,
	}, nil
}

// annotateZoning tags the subject with its zoning district when layers are
// configured. A failed layer load is reported but never blocks the analysis.
func annotateZoning(req *analysis.Request, cfg config.Config) {
	if len(cfg.Zoning) == 0 || req.Subject.Zoning != "" {
		return
	}
	ix, err := zoning.Load(cfg.Zoning)
	if err != nil {
		slog.Warn("zoning layers unavailable", "error", err)
		return
	}
	if code, ok := ix.Lookup(req.Subject.Latitude, req.Subject.Longitude); ok {
		req.Subject.Zoning = code
	}
}
