// Package geo handles GeoJSON documents, coordinate pairs and their checks.
package geo

// GeometryPolygon is the only geometry type whose rings are checked.
const GeometryPolygon = "Polygon"

// nameKeys are the property keys tried, in order, for a feature's display name.
var nameKeys = []string{"name", "Name", "ident"}

// FeatureCollection is a loose view over a decoded GeoJSON document.
// Only features[].geometry.{type,coordinates} and a name property are consulted.
type FeatureCollection struct {
	Features []Feature
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties Value
	Geometry   Geometry
}

// Geometry represents the geometry of a feature (Point, Polygon, etc.).
// Coordinates is kept undecoded since its nesting depends on Type.
type Geometry struct {
	Type        string
	Coordinates Value // Null when absent
}

// NewFeatureCollection builds the view from a decoded document.
// A missing or non-array "features" yields no features, a missing "geometry"
// an empty one; nothing here fails.
func NewFeatureCollection(doc Value) FeatureCollection {
	features, ok := doc.Get("features")
	if !ok || features.Kind != Array {
		return FeatureCollection{}
	}

	fc := FeatureCollection{Features: make([]Feature, 0, len(features.Items))}
	for _, item := range features.Items {
		fc.Features = append(fc.Features, newFeature(item))
	}

	return fc
}

func newFeature(v Value) Feature {
	var f Feature

	if props, ok := v.Get("properties"); ok {
		f.Properties = props
	}

	geom, ok := v.Get("geometry")
	if !ok {
		geom = ObjectValue()
	}
	if t, ok := geom.Get("type"); ok && t.Kind == String {
		f.Geometry.Type = t.String
	}
	if c, ok := geom.Get("coordinates"); ok {
		f.Geometry.Coordinates = c
	}

	return f
}

// Name returns the first string among the name, Name and ident properties.
func (f Feature) Name() string {
	for _, key := range nameKeys {
		if v, ok := f.Properties.Get(key); ok && v.Kind == String && v.String != "" {
			return v.String
		}
	}
	return ""
}
