package types

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeAddress(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123 Main St", "123 MAIN ST"},
		{"  123  main st,  fort worth ", "123 MAIN ST FORT WORTH"},
		{"123 MAIN ST, FORT WORTH, TX 76109", "123 MAIN ST FORT WORTH TX 76109"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeAddress(tc.in); got != tc.want {
			t.Errorf("NormalizeAddress(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFullAddress(t *testing.T) {
	p := Property{Address: "123 Main St", City: "Fort Worth", State: "TX", ZipCode: "76109"}
	if got := p.FullAddress(); got != "123 Main St, Fort Worth, TX 76109" {
		t.Errorf("FullAddress = %q", got)
	}

	bare := Property{Address: "123 Main St"}
	if got := bare.FullAddress(); got != "123 Main St" {
		t.Errorf("FullAddress without city = %q", got)
	}
}

func TestPropertyValidate(t *testing.T) {
	good := Property{ID: "p1", SquareFootage: 1800}
	if err := good.Validate(); err != nil {
		t.Errorf("valid property rejected: %v", err)
	}

	bad := Property{ID: "p2"}
	err := bad.Validate()
	var dataErr *InvalidPropertyDataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("want InvalidPropertyDataError, got %v", err)
	}
	if dataErr.ID != "p2" || dataErr.Field != "square_footage" {
		t.Errorf("error identifies %s/%s, want p2/square_footage", dataErr.ID, dataErr.Field)
	}
}

func TestComparableSaleValidate(t *testing.T) {
	sold := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		comp ComparableSale
		ok   bool
	}{
		{"valid", ComparableSale{Property: Property{SquareFootage: 1800}, SalePrice: 350000, SaleDate: sold}, true},
		{"zero sqft", ComparableSale{SalePrice: 350000, SaleDate: sold}, false},
		{"zero sale date", ComparableSale{Property: Property{SquareFootage: 1800}, SalePrice: 350000}, false},
		{"zero price", ComparableSale{Property: Property{SquareFootage: 1800}, SaleDate: sold}, false},
		{"negative price", ComparableSale{Property: Property{SquareFootage: 1800}, SalePrice: -1, SaleDate: sold}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.comp.Validate()
			if tc.ok && err != nil {
				t.Errorf("valid comp rejected: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("invalid comp accepted")
			}
		})
	}
}

func TestPricePerSqft(t *testing.T) {
	c := ComparableSale{Property: Property{SquareFootage: 1800}, SalePrice: 369000}
	if got := c.PricePerSqft(); got != 205 {
		t.Errorf("PricePerSqft = %g, want 205", got)
	}
}
