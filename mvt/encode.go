package mvt

import (
	"fmt"
	"maps"
	"slices"

	"github.com/eak1mov/go-libmvt/mvt/spec"
	"google.golang.org/protobuf/proto"
)

// Marshal encodes a typed tile into wire bytes. The encoding is
// canonical: the same input always produces the same bytes, and
// Unmarshal(Marshal(tile)) reproduces the input structurally.
func Marshal(tile *VectorTile) ([]byte, error) {
	raw, err := ToRaw(tile)
	if err != nil {
		return nil, err
	}
	return spec.SerializeTile(raw), nil
}

// ToRaw converts a typed tile into the raw wire model.
func ToRaw(tile *VectorTile) (*spec.Tile, error) {
	raw := &spec.Tile{Layers: make([]*spec.Layer, 0, len(tile.Layers))}
	for i := range tile.Layers {
		rawLayer, err := ToRawLayer(&tile.Layers[i])
		if err != nil {
			return nil, fmt.Errorf("layer %d (%q): %w", i, tile.Layers[i].Name, err)
		}
		raw.Layers = append(raw.Layers, rawLayer)
	}
	return raw, nil
}

// ToRawLayer converts a single typed layer, building its deduplicated
// key/value dictionaries in first-seen order across features. Features
// are emitted points first, then linestrings, then polygons, matching
// the typed model's field order.
func ToRawLayer(layer *Layer) (*spec.Layer, error) {
	d := &dictBuilder{}
	features := make([]*spec.Feature, 0,
		len(layer.Points)+len(layer.LineStrings)+len(layer.Polygons))

	for i := range layer.Points {
		rawFeature, err := encodeFeature(d, &layer.Points[i], spec.GeomTypePoint, spec.EncodePoints)
		if err != nil {
			return nil, fmt.Errorf("point feature %d: %w", i, err)
		}
		features = append(features, rawFeature)
	}
	for i := range layer.LineStrings {
		rawFeature, err := encodeFeature(d, &layer.LineStrings[i], spec.GeomTypeLineString, spec.EncodeLineStrings)
		if err != nil {
			return nil, fmt.Errorf("linestring feature %d: %w", i, err)
		}
		features = append(features, rawFeature)
	}
	for i := range layer.Polygons {
		rawFeature, err := encodeFeature(d, &layer.Polygons[i], spec.GeomTypePolygon, spec.EncodePolygons)
		if err != nil {
			return nil, fmt.Errorf("polygon feature %d: %w", i, err)
		}
		features = append(features, rawFeature)
	}

	return &spec.Layer{
		Version:  proto.Uint32(layer.Version),
		Name:     proto.String(layer.Name),
		Features: features,
		Keys:     d.keys,
		Values:   d.values,
		Extent:   proto.Uint32(layer.Extent),
	}, nil
}

func encodeFeature[G any](d *dictBuilder, feature *Feature[G], geomType spec.GeomType, encode func([]G) ([]uint32, error)) (*spec.Feature, error) {
	if len(feature.Geometries) == 0 {
		return nil, ErrNoGeometry
	}
	geometry, err := encode(feature.Geometries)
	if err != nil {
		return nil, err
	}
	tags, err := d.tags(feature.Metadata)
	if err != nil {
		return nil, err
	}

	rawFeature := &spec.Feature{
		Tags:     tags,
		Type:     &geomType,
		Geometry: geometry,
	}
	if feature.ID != 0 {
		rawFeature.ID = proto.Uint64(feature.ID)
	}
	return rawFeature, nil
}

// dictBuilder accumulates the layer-scoped key and value dictionaries,
// deduplicating by structural equality in first-seen order.
type dictBuilder struct {
	keys       []string
	keyIndex   map[string]uint32
	values     []*spec.Value
	valueIndex map[Val]uint32
}

// tags rewrites a metadata map into a flat index array. Keys are
// emitted in sorted order: Go map iteration is randomized, and
// byte-reproducible output needs a deterministic order.
func (d *dictBuilder) tags(metadata map[string]Val) ([]uint32, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	tags := make([]uint32, 0, 2*len(metadata))
	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		valueIndex, err := d.value(metadata[key])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		tags = append(tags, d.key(key), valueIndex)
	}
	return tags, nil
}

func (d *dictBuilder) key(key string) uint32 {
	if index, ok := d.keyIndex[key]; ok {
		return index
	}
	if d.keyIndex == nil {
		d.keyIndex = make(map[string]uint32)
	}
	index := uint32(len(d.keys))
	d.keys = append(d.keys, key)
	d.keyIndex[key] = index
	return index
}

func (d *dictBuilder) value(val Val) (uint32, error) {
	if index, ok := d.valueIndex[val]; ok {
		return index, nil
	}
	rawValue, err := valToRaw(val)
	if err != nil {
		return 0, err
	}
	if d.valueIndex == nil {
		d.valueIndex = make(map[Val]uint32)
	}
	index := uint32(len(d.values))
	d.values = append(d.values, rawValue)
	d.valueIndex[val] = index
	return index, nil
}
