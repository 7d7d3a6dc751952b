package main

import (
	"time"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/analysis"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

// sampleRequest builds the built-in demonstration deal: a 1,800 sqft
// fair-condition subject with four recent sales nearby, one of them priced
// far enough off the neighborhood to be rejected as an outlier.
func sampleRequest() analysis.Request {
	now := time.Now()

	subject := types.Property{
		ID:            "sample-subject",
		Address:       "123 Main St",
		City:          "Fort Worth",
		State:         "TX",
		ZipCode:       "76109",
		Latitude:      32.7000,
		Longitude:     -97.3600,
		Bedrooms:      3,
		Bathrooms:     2,
		SquareFootage: 1800,
		LotSize:       7200,
		YearBuilt:     1962,
		Condition:     types.ConditionFair,
		LastSaleDate:  now.AddDate(-6, 0, 0),
		LastSalePrice: 210000,
		Features:      []string{"garage", "fenced yard"},
	}

	comp := func(id, addr string, lat, lon, sqft, ppsf float64, bd int, ba float64, monthsAgo int) types.ComparableSale {
		return types.ComparableSale{
			Property: types.Property{
				ID:            id,
				Address:       addr,
				City:          subject.City,
				State:         subject.State,
				ZipCode:       subject.ZipCode,
				Latitude:      lat,
				Longitude:     lon,
				Bedrooms:      bd,
				Bathrooms:     ba,
				SquareFootage: sqft,
				YearBuilt:     1960,
				Condition:     types.ConditionGood,
			},
			SalePrice: ppsf * sqft,
			SaleDate:  now.AddDate(0, -monthsAgo, 0),
		}
	}

	return analysis.Request{
		Subject: subject,
		Candidates: []types.ComparableSale{
			comp("sample-comp-1", "125 Main St", 32.7010, -97.3610, 1750, 200, 3, 2, 1),
			comp("sample-comp-2", "480 Oak Ave", 32.7050, -97.3550, 1820, 205, 3, 2, 2),
			comp("sample-comp-3", "77 Elm Dr", 32.6950, -97.3680, 1900, 210, 4, 2.5, 3),
			comp("sample-comp-4", "901 Lakeview Ct", 32.7080, -97.3520, 1780, 420, 3, 2, 4),
		},
		PurchasePrice: 350000,
		AsOf:          now,
	}
}
