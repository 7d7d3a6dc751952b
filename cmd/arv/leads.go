package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/analysis"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

// Path to the persistent leads CSV file. Kept under data/ so it survives
// across program invocations.
var leadsFile = filepath.Join("data", "leads.csv")

var leadsHeader = []string{"address", "arv", "roi_percent", "risk_score", "confidence", "analyzed_at"}

type lead struct {
	Address    string
	ARV        float64
	ROIPercent float64
	RiskScore  float64
	Confidence string
	AnalyzedAt time.Time
}

// loadLeads returns all saved leads. A missing file means no leads yet, not
// an error.
func loadLeads() ([]lead, error) {
	f, err := os.Open(leadsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var leads []lead
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == leadsHeader[0] {
			continue // header
		}
		if len(row) < 6 {
			continue
		}
		arv, _ := strconv.ParseFloat(row[1], 64)
		roi, _ := strconv.ParseFloat(row[2], 64)
		risk, _ := strconv.ParseFloat(row[3], 64)
		at, _ := time.Parse(time.RFC3339, row[5])
		leads = append(leads, lead{
			Address:    row[0],
			ARV:        arv,
			ROIPercent: roi,
			RiskScore:  risk,
			Confidence: row[4],
			AnalyzedAt: at,
		})
	}
	return leads, nil
}

// saveLead records the analyzed property unless its address is already in
// the file. Comparison uses the same normalization as address lookups so
// whitespace and casing variants do not produce duplicates.
func saveLead(res *analysis.Result) error {
	normNew := types.NormalizeAddress(res.Subject.FullAddress())
	existing, err := loadLeads()
	if err != nil {
		return err
	}
	for _, l := range existing {
		if types.NormalizeAddress(l.Address) == normNew {
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(leadsFile), 0755); err != nil {
		return err
	}

	writeHeader := len(existing) == 0
	f, err := os.OpenFile(leadsFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(leadsHeader); err != nil {
			return err
		}
	}
	record := []string{
		res.Subject.FullAddress(),
		fmt.Sprintf("%.0f", res.Valuation.Expected),
		fmt.Sprintf("%.2f", res.Feasibility.ROIPercent),
		fmt.Sprintf("%.0f", res.Feasibility.RiskScore),
		string(res.Valuation.Confidence),
		res.GeneratedAt.Format(time.RFC3339),
	}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
