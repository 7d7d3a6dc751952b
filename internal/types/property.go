package types

import (
	"fmt"
	"time"
)

// Condition tags assigned by the data provider. Unknown tags are allowed and
// fall back to the estimator's default multiplier.
const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
)

// Property holds the subject-property record supplied by the data-acquisition
// layer. It is immutable once constructed; validate at the boundary with
// Validate and treat it read-only afterwards.
type Property struct {
	ID            string    `json:"property_id"`
	Address       string    `json:"address"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	ZipCode       string    `json:"zip_code,omitempty"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     float64   `json:"bathrooms"`
	SquareFootage float64   `json:"square_footage"`
	LotSize       float64   `json:"lot_size,omitempty"`
	YearBuilt     int       `json:"year_built,omitempty"`
	Condition     string    `json:"condition,omitempty"`
	LastSaleDate  time.Time `json:"last_sale_date,omitzero"`
	LastSalePrice float64   `json:"last_sale_price,omitempty"`
	Zoning        string    `json:"zoning,omitempty"`
	Features      []string  `json:"features,omitempty"`
}

// FullAddress joins the situs address with city/state/zip when present.
func (p Property) FullAddress() string {
	addr := p.Address
	if p.City != "" {
		addr += ", " + p.City
	}
	if p.State != "" {
		addr += ", " + p.State
	}
	if p.ZipCode != "" {
		addr += " " + p.ZipCode
	}
	return addr
}

// Validate checks the construction-time invariants of a subject record.
func (p Property) Validate() error {
	if p.SquareFootage <= 0 {
		return &InvalidPropertyDataError{ID: p.ID, Field: "square_footage", Constraint: "must be > 0"}
	}
	return nil
}

// ComparableSale is a recently sold property used as a pricing reference.
// DistanceMiles is computed by the selector relative to the subject, never
// supplied by the data layer.
type ComparableSale struct {
	Property
	SalePrice     float64   `json:"sale_price"`
	SaleDate      time.Time `json:"sale_date"`
	DistanceMiles float64   `json:"distance_miles,omitempty"`
}

// PricePerSqft returns the sale price per square foot. The caller must have
// validated SquareFootage > 0.
func (c ComparableSale) PricePerSqft() float64 {
	return c.SalePrice / c.SquareFootage
}

// Validate checks the construction-time invariants of a comparable record.
func (c ComparableSale) Validate() error {
	if c.SquareFootage <= 0 {
		return &InvalidPropertyDataError{ID: c.ID, Field: "square_footage", Constraint: "must be > 0"}
	}
	if c.SaleDate.IsZero() {
		return &InvalidPropertyDataError{ID: c.ID, Field: "sale_date", Constraint: "must resolve to a calendar date"}
	}
	if c.SalePrice <= 0 {
		return &InvalidPropertyDataError{ID: c.ID, Field: "sale_price", Constraint: "must be > 0"}
	}
	return nil
}

// InvalidPropertyDataError reports a record that failed boundary validation,
// identifying the offending property and constraint so the data layer can log
// or refetch it.
type InvalidPropertyDataError struct {
	ID         string
	Field      string
	Constraint string
}

func (e *InvalidPropertyDataError) Error() string {
	return fmt.Sprintf("invalid property data (%s): %s %s", e.ID, e.Field, e.Constraint)
}
