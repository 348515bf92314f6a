// Package geojson converts decoded vector tiles into orb geometries
// and GeoJSON feature collections. Coordinates stay in the tile-local
// integer space; projecting them to geographic coordinates is up to
// the caller.
package geojson

import (
	"github.com/paulmach/orb"
	orbjson "github.com/paulmach/orb/geojson"

	"github.com/eak1mov/go-libmvt/mvt"
)

// FromTile converts every layer of the tile, keyed by layer name.
// If the tile carries layers with duplicate names, the last one wins.
func FromTile(tile *mvt.VectorTile) map[string]*orbjson.FeatureCollection {
	layers := make(map[string]*orbjson.FeatureCollection, len(tile.Layers))
	for i := range tile.Layers {
		layers[tile.Layers[i].Name] = FromLayer(&tile.Layers[i])
	}
	return layers
}

// FromLayer converts a layer's features in model order: points, then
// linestrings, then polygons. A feature bundling multiple geometries
// becomes the corresponding Multi* geometry.
func FromLayer(layer *mvt.Layer) *orbjson.FeatureCollection {
	fc := orbjson.NewFeatureCollection()
	for i := range layer.Points {
		fc.Append(newFeature(&layer.Points[i], pointGeometry))
	}
	for i := range layer.LineStrings {
		fc.Append(newFeature(&layer.LineStrings[i], lineStringGeometry))
	}
	for i := range layer.Polygons {
		fc.Append(newFeature(&layer.Polygons[i], polygonGeometry))
	}
	return fc
}

func newFeature[G any](feature *mvt.Feature[G], geometry func([]G) orb.Geometry) *orbjson.Feature {
	f := orbjson.NewFeature(geometry(feature.Geometries))
	if feature.ID != 0 {
		f.ID = feature.ID
	}
	for key, val := range feature.Metadata {
		f.Properties[key] = propertyValue(val)
	}
	return f
}

func pointGeometry(points []mvt.Point) orb.Geometry {
	if len(points) == 1 {
		return orbPoint(points[0])
	}
	multi := make(orb.MultiPoint, len(points))
	for i, p := range points {
		multi[i] = orbPoint(p)
	}
	return multi
}

func lineStringGeometry(lines []mvt.LineString) orb.Geometry {
	if len(lines) == 1 {
		return orbLineString(lines[0])
	}
	multi := make(orb.MultiLineString, len(lines))
	for i, line := range lines {
		multi[i] = orbLineString(line)
	}
	return multi
}

func polygonGeometry(polygons []mvt.Polygon) orb.Geometry {
	if len(polygons) == 1 {
		return orbPolygon(polygons[0])
	}
	multi := make(orb.MultiPolygon, len(polygons))
	for i, polygon := range polygons {
		multi[i] = orbPolygon(polygon)
	}
	return multi
}

func orbPoint(p mvt.Point) orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

func orbLineString(line mvt.LineString) orb.LineString {
	points := make(orb.LineString, len(line))
	for i, p := range line {
		points[i] = orbPoint(p)
	}
	return points
}

// orbRing materializes the implicit closing edge: GeoJSON rings repeat
// the first position at the end. An empty ring stays empty.
func orbRing(ring mvt.Ring) orb.Ring {
	if len(ring) == 0 {
		return orb.Ring{}
	}
	points := make(orb.Ring, 0, len(ring)+1)
	for _, p := range ring {
		points = append(points, orbPoint(p))
	}
	return append(points, points[0])
}

func orbPolygon(polygon mvt.Polygon) orb.Polygon {
	rings := make(orb.Polygon, 0, 1+len(polygon.Holes))
	rings = append(rings, orbRing(polygon.Exterior))
	for _, hole := range polygon.Holes {
		rings = append(rings, orbRing(hole))
	}
	return rings
}

func propertyValue(val mvt.Val) any {
	switch v := val.(type) {
	case mvt.String:
		return string(v)
	case mvt.Float:
		return float64(v)
	case mvt.Double:
		return float64(v)
	case mvt.Int:
		return int64(v)
	case mvt.Uint:
		return uint64(v)
	case mvt.Sint:
		return int64(v)
	case mvt.Bool:
		return bool(v)
	default:
		return nil
	}
}
