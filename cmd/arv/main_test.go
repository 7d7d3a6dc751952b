package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/analysis"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

func TestSampleRequest_AnalyzesCleanly(t *testing.T) {
	res, err := analysis.Run(sampleRequest(), config.Default())
	if err != nil {
		t.Fatalf("sample analysis failed: %v", err)
	}
	if res.Stats.OutliersRejected != 1 {
		t.Errorf("OutliersRejected = %d, want the $420/sqft sale rejected", res.Stats.OutliersRejected)
	}
	if res.Valuation.Insufficient {
		t.Error("sample data produced an insufficient comp set")
	}
	if res.Valuation.Expected != 205*1800 {
		t.Errorf("sample ARV = %g, want %g", res.Valuation.Expected, 205.0*1800)
	}
}

func TestCollectRequestFiles_ExpandsDirectories(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	extra := filepath.Join(dir, "notes.txt")

	files, err := collectRequestFiles([]string{dir, extra})
	if err != nil {
		t.Fatalf("collectRequestFiles failed: %v", err)
	}
	// Directory scan picks up only *.json; explicit files pass through as-is.
	want := []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json"), extra}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d: %v", len(files), len(want), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestSaveLead_DeduplicatesByAddress(t *testing.T) {
	orig := leadsFile
	leadsFile = filepath.Join(t.TempDir(), "leads.csv")
	defer func() { leadsFile = orig }()

	res := &analysis.Result{
		Subject:     types.Property{Address: "123 Main St", City: "Fort Worth"},
		Valuation:   types.ValuationResult{Expected: 369000, Confidence: types.ConfidenceModerate},
		Feasibility: types.FeasibilityReport{ROIPercent: -16.01, RiskScore: 62},
		GeneratedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := saveLead(res); err != nil {
		t.Fatalf("saveLead failed: %v", err)
	}

	dup := *res
	dup.Subject.Address = "123  MAIN ST" // normalizes to the same address
	if err := saveLead(&dup); err != nil {
		t.Fatalf("saveLead failed on duplicate: %v", err)
	}

	other := *res
	other.Subject.Address = "456 Oak Ave"
	if err := saveLead(&other); err != nil {
		t.Fatalf("saveLead failed: %v", err)
	}

	leads, err := loadLeads()
	if err != nil {
		t.Fatalf("loadLeads failed: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("got %d leads, want 2 (duplicate dropped)", len(leads))
	}
	if leads[0].ARV != 369000 || leads[0].Confidence != "MODERATE" {
		t.Errorf("lead fields not round-tripped: %+v", leads[0])
	}
	if !leads[0].AnalyzedAt.Equal(res.GeneratedAt) {
		t.Errorf("AnalyzedAt = %v, want %v", leads[0].AnalyzedAt, res.GeneratedAt)
	}
}

func TestLoadLeads_MissingFileIsEmpty(t *testing.T) {
	orig := leadsFile
	leadsFile = filepath.Join(t.TempDir(), "leads.csv")
	defer func() { leadsFile = orig }()

	leads, err := loadLeads()
	if err != nil {
		t.Fatalf("loadLeads failed: %v", err)
	}
	if len(leads) != 0 {
		t.Errorf("got %d leads from a missing file", len(leads))
	}
}
