// Package mvt provides a typed codec for Mapbox Vector Tiles
// (spec 2.1). It converts between protobuf wire bytes and a typed
// model of layers and point/linestring/polygon features, with an
// exact round-trip guarantee for tiles this encoder produced.
//
// All values are plain owned data: decoding and encoding are pure
// transformations and safe to run in parallel across tiles.
package mvt

import "github.com/eak1mov/go-libmvt/mvt/spec"

type Point = spec.Point
type LineString = spec.LineString
type Ring = spec.Ring
type Polygon = spec.Polygon

// VectorTile is an ordered sequence of layers, in wire order.
// Layer names are typically, but not necessarily, unique.
type VectorTile struct {
	Layers []Layer
}

// Layer splits its features by geometry kind instead of keeping a
// tagged union per feature, giving callers direct typed access.
type Layer struct {
	Version uint32
	Name    string
	Extent  uint32

	Points      []Feature[Point]
	LineStrings []Feature[LineString]
	Polygons    []Feature[Polygon]
}

// Feature is a single feature: an id (0 when absent, not required
// unique), a metadata map, and one or more same-kind geometries (the
// MVT "Multi*" convention).
type Feature[G any] struct {
	ID         uint64
	Metadata   map[string]Val
	Geometries []G
}

// NewLayer returns an empty layer with the spec defaults
// (version 2, extent 4096).
func NewLayer(name string) Layer {
	return Layer{
		Version: spec.DefaultVersion,
		Name:    name,
		Extent:  spec.DefaultExtent,
	}
}
