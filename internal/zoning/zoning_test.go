package zoning

import (
	"math"
	"testing"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
)

func TestLoad_EmptyConfigDisablesLookups(t *testing.T) {
	ix, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ix != nil {
		t.Fatal("empty config produced a non-nil index")
	}
	if _, ok := ix.Lookup(32.7, -97.36); ok {
		t.Error("nil index reported a hit")
	}
}

func TestLoad_MissingShapefileFails(t *testing.T) {
	_, err := Load([]config.ZoningLayer{{Path: "testdata/does-not-exist.shp"}})
	if err == nil {
		t.Error("missing shapefile did not error")
	}
}

func TestPointInPolygon(t *testing.T) {
	// Unit square, ring closed, stored (y, x).
	square := [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}

	if !pointInPolygon(0.5, 0.5, square) {
		t.Error("center of square reported outside")
	}
	if pointInPolygon(1.5, 0.5, square) {
		t.Error("point above square reported inside")
	}
	if pointInPolygon(0.5, -0.1, square) {
		t.Error("point left of square reported inside")
	}
}

func TestPointInPolygon_Concave(t *testing.T) {
	// L-shape: the notch at the top right is outside.
	lShape := [][2]float64{{0, 0}, {0, 2}, {1, 2}, {1, 1}, {2, 1}, {2, 0}, {0, 0}}

	if !pointInPolygon(0.5, 0.5, lShape) {
		t.Error("foot of the L reported outside")
	}
	if !pointInPolygon(1.5, 0.5, lShape) {
		t.Error("leg of the L reported outside")
	}
	if pointInPolygon(1.5, 1.5, lShape) {
		t.Error("notch of the L reported inside")
	}
}

func TestLookup_BBoxAndProjection(t *testing.T) {
	// A feature in state-plane feet around downtown Fort Worth.
	y, x := wgs84ToTxNC(32.7555, -97.3308)
	ring := [][2]float64{
		{y - 500, x - 500}, {y - 500, x + 500},
		{y + 500, x + 500}, {y + 500, x - 500},
		{y - 500, x - 500},
	}
	ix := &Index{layers: []layer{{
		projection: "epsg:2276",
		features: []feature{{
			parts: [][][2]float64{ring},
			attrs: map[string]string{"ZONING": "A-5"},
			minY:  y - 500, minX: x - 500, maxY: y + 500, maxX: x + 500,
		}},
	}}}

	code, ok := ix.Lookup(32.7555, -97.3308)
	if !ok || code != "A-5" {
		t.Errorf("Lookup = %q, %v; want A-5 inside the feature", code, ok)
	}
	if _, ok := ix.Lookup(32.9, -97.0); ok {
		t.Error("point far outside the feature reported inside")
	}
}

func TestZoningCode_FieldFallbacks(t *testing.T) {
	cases := []struct {
		attrs map[string]string
		want  string
	}{
		{map[string]string{"ZONING": "A-5"}, "A-5"},
		{map[string]string{"BASE_ZONIN": "B"}, "B"},
		{map[string]string{"ZONE_CODE": " C2 "}, "C2"},
		{map[string]string{"ZONE": "D"}, "D"},
		{map[string]string{"OTHER": "X"}, ""},
		{map[string]string{"ZONING": "", "ZONE": "D"}, "D"},
	}
	for _, tc := range cases {
		if got := zoningCode(tc.attrs); got != tc.want {
			t.Errorf("zoningCode(%v) = %q, want %q", tc.attrs, got, tc.want)
		}
	}
}

func TestWgs84ToTxNC_ProjectionShape(t *testing.T) {
	// On the central meridian the easting is exactly the false easting.
	_, e0 := wgs84ToTxNC(32.7555, lon0Deg)
	if math.Abs(e0-spFalseEasting) > 1e-6 {
		t.Errorf("easting on central meridian = %.3f, want %g", e0, spFalseEasting)
	}

	// East of the central meridian the easting grows, and a degree of
	// longitude near 32.7N spans roughly 57 miles (300k feet).
	_, eFW := wgs84ToTxNC(32.7555, -97.3308)
	if eFW <= spFalseEasting {
		t.Errorf("easting east of central meridian = %.0f, want > %g", eFW, spFalseEasting)
	}
	dLon := -98.5 - (-97.3308)
	wantFt := math.Abs(dLon) * 57 * 5280
	if math.Abs((eFW-spFalseEasting)-wantFt) > 0.05*wantFt {
		t.Errorf("easting offset = %.0f ft, want within 5%% of %.0f", eFW-spFalseEasting, wantFt)
	}

	// Northing grows with latitude; a degree of latitude is ~69 miles.
	nLow, _ := wgs84ToTxNC(32.0, -97.3308)
	nHigh, _ := wgs84ToTxNC(33.0, -97.3308)
	dFt := nHigh - nLow
	if math.Abs(dFt-69*5280) > 0.05*69*5280 {
		t.Errorf("one degree of latitude = %.0f ft of northing, want ~%d", dFt, 69*5280)
	}
}
