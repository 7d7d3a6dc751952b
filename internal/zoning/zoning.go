// Package zoning annotates properties with the zoning district they fall in,
// using municipal shapefile layers. Lookup is bbox-prefiltered ray-casting
// point-in-polygon over the polygon rings.
package zoning

import (
	"fmt"
	"math"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
)

// feature is one polygon (possibly multi-part) with its DBF attributes. Ring
// points are stored (y, x) in the layer's native CRS.
type feature struct {
	parts [][][2]float64
	attrs map[string]string
	minY  float64
	minX  float64
	maxY  float64
	maxX  float64
}

type layer struct {
	features   []feature
	projection string
}

// Index holds all loaded zoning layers, searched in configuration order.
type Index struct {
	layers []layer
}

// Load reads every configured shapefile layer. An empty configuration yields
// a nil Index, which looks up nothing.
func Load(layers []config.ZoningLayer) (*Index, error) {
	if len(layers) == 0 {
		return nil, nil
	}
	ix := &Index{}
	for _, lc := range layers {
		feats, err := loadShapefile(lc.Path)
		if err != nil {
			return nil, fmt.Errorf("load zoning shapefile %s: %w", lc.Path, err)
		}
		ix.layers = append(ix.layers, layer{features: feats, projection: strings.ToLower(lc.Projection)})
	}
	return ix, nil
}

func loadShapefile(path string) ([]feature, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	fields := r.Fields()

	var features []feature
	for r.Next() {
		idx, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue // skip non-polygon geometries
		}

		numParts := len(poly.Parts)
		parts := make([][][2]float64, numParts)

		minY, minX := math.MaxFloat64, math.MaxFloat64
		maxY, maxX := -math.MaxFloat64, -math.MaxFloat64

		for partIdx := 0; partIdx < numParts; partIdx++ {
			start := poly.Parts[partIdx]
			end := int32(len(poly.Points))
			if partIdx+1 < numParts {
				end = poly.Parts[partIdx+1]
			}
			ring := make([][2]float64, int(end-start))
			j := 0
			for i := start; i < end; i++ {
				pt := poly.Points[i]
				ring[j] = [2]float64{pt.Y, pt.X}
				if pt.Y < minY {
					minY = pt.Y
				}
				if pt.Y > maxY {
					maxY = pt.Y
				}
				if pt.X < minX {
					minX = pt.X
				}
				if pt.X > maxX {
					maxX = pt.X
				}
				j++
			}
			parts[partIdx] = ring
		}

		attrs := make(map[string]string)
		for i, f := range fields {
			attrs[f.String()] = r.ReadAttribute(idx, i)
		}

		features = append(features, feature{
			parts: parts,
			attrs: attrs,
			minY:  minY, minX: minX, maxY: maxY, maxX: maxX,
		})
	}
	return features, nil
}

// Lookup returns the zoning code containing the given WGS-84 point. Layers
// published in state-plane feet have the query point projected first.
func (ix *Index) Lookup(lat, lon float64) (string, bool) {
	if ix == nil {
		return "", false
	}
	for _, l := range ix.layers {
		y, x := lat, lon
		if l.projection == "epsg:2276" {
			y, x = wgs84ToTxNC(lat, lon)
		}
		for _, f := range l.features {
			if y < f.minY || y > f.maxY || x < f.minX || x > f.maxX {
				continue // quick bbox reject
			}
			for _, ring := range f.parts {
				if pointInPolygon(y, x, ring) {
					return zoningCode(f.attrs), true
				}
			}
		}
	}
	return "", false
}

// zoningCode pulls the district code out of the attribute table, trying the
// common field names.
func zoningCode(attrs map[string]string) string {
	for _, field := range []string{"ZONING", "BASE_ZONIN", "ZONE_CODE", "ZONE"} {
		if z := strings.TrimSpace(attrs[field]); z != "" {
			return z
		}
	}
	return ""
}

// pointInPolygon implements the ray-casting algorithm. Shapefile rings are
// closed, so no explicit closing is needed.
func pointInPolygon(y, x float64, ring [][2]float64) bool {
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		yi, xi := ring[i][0], ring[i][1]
		yj, xj := ring[j][0], ring[j][1]
		intersect := ((yi > y) != (yj > y)) && (x < (xj-xi)*(y-yi)/(yj-yi)+xi)
		if intersect {
			inside = !inside
		}
		j = i
	}
	return inside
}
