package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/analysis"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/dataset"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/report"
)

var batchFlags struct {
	workers int
	strict  bool
	outDir  string
}

var batchCmd = &cobra.Command{
	Use:   "batch <request-file-or-dir>...",
	Short: "Analyze many request files in parallel",
	Long: `Analyze every JSON request file given (directories are scanned for *.json)
and print a one-line summary per property. With --out-dir, a full Markdown
report is also written per request.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.IntVar(&batchFlags.workers, "workers", 4, "Number of analyses to run concurrently (0 = unlimited)")
	f.BoolVar(&batchFlags.strict, "strict", false, "Fail individual requests that have too few comps")
	f.StringVar(&batchFlags.outDir, "out-dir", "", "Directory to write per-property Markdown reports into")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return err
	}

	files, err := collectRequestFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no request files found")
	}

	reqs := make([]analysis.Request, 0, len(files))
	for _, f := range files {
		req, err := dataset.Load(f)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		req.Strict = batchFlags.strict
		reqs = append(reqs, req)
	}

	items := analysis.RunBatch(cmd.Context(), reqs, cfg, batchFlags.workers)

	if batchFlags.outDir != "" {
		if err := os.MkdirAll(batchFlags.outDir, 0755); err != nil {
			return err
		}
	}

	failed := 0
	for i, item := range items {
		name := filepath.Base(files[i])
		if item.Err != nil {
			failed++
			fmt.Printf("%-30s  FAILED: %v\n", name, item.Err)
			continue
		}
		res := item.Result
		f := res.Feasibility
		fmt.Printf("%-30s  ARV %12s  ROI %8s  risk %3.0f  %s\n",
			name, report.Currency(res.Valuation.Expected), fmt.Sprintf("%.2f%%", f.ROIPercent),
			f.RiskScore, res.Valuation.Confidence)

		if batchFlags.outDir != "" {
			out := filepath.Join(batchFlags.outDir, strings.TrimSuffix(name, ".json")+".md")
			if err := os.WriteFile(out, []byte(report.Markdown(res)), 0644); err != nil {
				return fmt.Errorf("write report %s: %w", out, err)
			}
		}
	}

	fmt.Printf("\n%d analyzed, %d failed\n", len(items)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(items))
	}
	return nil
}

// collectRequestFiles expands directory arguments into their *.json entries
// and returns a deterministic ordering.
func collectRequestFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}
