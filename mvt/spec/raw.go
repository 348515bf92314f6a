// Package spec implements the wire-level primitives of the Mapbox
// Vector Tile format, spec version 2.1: the raw protobuf message
// model, field framing, the geometry command stream and polygon ring
// rules. Package mvt builds the typed tile model on top of it.
package spec

type GeomType int32

const (
	GeomTypeUnknown    GeomType = 0
	GeomTypePoint      GeomType = 1
	GeomTypeLineString GeomType = 2
	GeomTypePolygon    GeomType = 3
)

const (
	DefaultVersion uint32 = 2
	DefaultExtent  uint32 = 4096
)

// Value mirrors the Tile.Value message. The spec requires exactly one
// of the value fields to be set; this layer does not enforce that.
type Value struct {
	StringValue *string
	FloatValue  *float32
	DoubleValue *float64
	IntValue    *int64
	UintValue   *uint64
	SintValue   *int64
	BoolValue   *bool

	// Unknown holds raw bytes of unrecognized fields, preserved for
	// reserialization.
	Unknown []byte
}

// Feature mirrors the Tile.Feature message.
type Feature struct {
	ID       *uint64
	Tags     []uint32
	Type     *GeomType
	Geometry []uint32

	Unknown []byte
}

// Layer mirrors the Tile.Layer message. Keys and Values are the
// layer-scoped dictionaries referenced by feature tags.
type Layer struct {
	Version  *uint32
	Name     *string
	Features []*Feature
	Keys     []string
	Values   []*Value
	Extent   *uint32

	Unknown []byte
}

// Tile mirrors the top-level Tile message. Fields this model does not
// interpret (e.g. extensions) survive round trips via Unknown.
type Tile struct {
	Layers []*Layer

	Unknown []byte
}
