// Package dataset reads analysis-request files produced by the
// data-acquisition layer: a subject property, its candidate comparable
// sales, the purchase price, and the analysis as-of date, all as plain JSON
// records. Records are validated here, at the construction boundary.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/analysis"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

// flexTime accepts RFC 3339 timestamps or bare YYYY-MM-DD dates, since
// request files are often written by hand.
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*t = flexTime(time.Time{})
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if v, err := time.Parse(layout, s); err == nil {
			*t = flexTime(v)
			return nil
		}
	}
	return fmt.Errorf("unparseable date %q (want RFC 3339 or YYYY-MM-DD)", s)
}

// The wire structs shadow the date fields of the domain types so both
// accepted formats decode; encoding/json gives the shallower field
// precedence.

type fileSubject struct {
	types.Property
	LastSaleDate flexTime `json:"last_sale_date"`
}

type fileComparable struct {
	types.ComparableSale
	SaleDate     flexTime `json:"sale_date"`
	LastSaleDate flexTime `json:"last_sale_date"`
}

type fileRequest struct {
	Subject       fileSubject      `json:"subject"`
	Comparables   []fileComparable `json:"comparables"`
	PurchasePrice float64          `json:"purchase_price"`
	AsOf          flexTime         `json:"as_of"`
}

// Load reads and validates one analysis request file.
func Load(path string) (analysis.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return analysis.Request{}, fmt.Errorf("read request %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes an analysis request from JSON and validates every record,
// failing fast with InvalidPropertyDataError on the first bad one.
func Parse(data []byte) (analysis.Request, error) {
	var f fileRequest
	if err := json.Unmarshal(data, &f); err != nil {
		return analysis.Request{}, fmt.Errorf("parse request: %w", err)
	}

	subject := f.Subject.Property
	subject.LastSaleDate = time.Time(f.Subject.LastSaleDate)
	if err := subject.Validate(); err != nil {
		return analysis.Request{}, err
	}

	candidates := make([]types.ComparableSale, 0, len(f.Comparables))
	for _, fc := range f.Comparables {
		c := fc.ComparableSale
		c.SaleDate = time.Time(fc.SaleDate)
		c.LastSaleDate = time.Time(fc.LastSaleDate)
		c.DistanceMiles = 0 // computed by the selector, never trusted from input
		if err := c.Validate(); err != nil {
			return analysis.Request{}, err
		}
		candidates = append(candidates, c)
	}

	return analysis.Request{
		Subject:       subject,
		Candidates:    candidates,
		PurchasePrice: f.PurchasePrice,
		AsOf:          time.Time(f.AsOf),
	}, nil
}
