package mvt

import (
	"fmt"

	"github.com/eak1mov/go-libmvt/mvt/spec"
)

// Unmarshal decodes wire bytes into a typed tile. Decoding is
// all-or-nothing: any malformed layer or feature fails the whole
// tile. Callers wanting partial tolerance can deserialize the raw
// tile themselves and use FromRawLayer per layer.
func Unmarshal(data []byte) (*VectorTile, error) {
	raw, err := spec.DeserializeTile(data)
	if err != nil {
		return nil, err
	}
	return FromRaw(raw)
}

// FromRaw converts a raw tile into the typed model.
func FromRaw(raw *spec.Tile) (*VectorTile, error) {
	tile := &VectorTile{Layers: make([]Layer, 0, len(raw.Layers))}
	for i, rawLayer := range raw.Layers {
		layer, err := FromRawLayer(rawLayer)
		if err != nil {
			name := ""
			if rawLayer.Name != nil {
				name = *rawLayer.Name
			}
			return nil, fmt.Errorf("layer %d (%q): %w", i, name, err)
		}
		tile.Layers = append(tile.Layers, layer)
	}
	return tile, nil
}

// FromRawLayer converts a single raw layer, resolving its key/value
// dictionaries once and routing each feature through the geometry
// decoder for its declared type. Missing version and extent fall back
// to the spec defaults.
func FromRawLayer(rawLayer *spec.Layer) (Layer, error) {
	layer := Layer{
		Version: spec.DefaultVersion,
		Extent:  spec.DefaultExtent,
	}
	if rawLayer.Version != nil {
		layer.Version = *rawLayer.Version
	}
	if rawLayer.Name != nil {
		layer.Name = *rawLayer.Name
	}
	if rawLayer.Extent != nil {
		layer.Extent = *rawLayer.Extent
	}

	values := make([]Val, len(rawLayer.Values))
	for i, rawValue := range rawLayer.Values {
		value, err := valFromRaw(rawValue)
		if err != nil {
			return Layer{}, fmt.Errorf("value %d: %w", i, err)
		}
		values[i] = value
	}

	for i, rawFeature := range rawLayer.Features {
		if err := decodeFeature(&layer, rawLayer.Keys, values, rawFeature); err != nil {
			return Layer{}, fmt.Errorf("feature %d: %w", i, err)
		}
	}
	return layer, nil
}

func decodeFeature(layer *Layer, keys []string, values []Val, rawFeature *spec.Feature) error {
	metadata, err := resolveTags(keys, values, rawFeature.Tags)
	if err != nil {
		return err
	}

	id := uint64(0)
	if rawFeature.ID != nil {
		id = *rawFeature.ID
	}

	geomType := spec.GeomTypeUnknown
	if rawFeature.Type != nil {
		geomType = *rawFeature.Type
	}

	switch geomType {
	case spec.GeomTypePoint:
		points, err := spec.DecodePoints(rawFeature.Geometry)
		if err != nil {
			return err
		}
		layer.Points = append(layer.Points, Feature[Point]{
			ID: id, Metadata: metadata, Geometries: points,
		})
	case spec.GeomTypeLineString:
		lines, err := spec.DecodeLineStrings(rawFeature.Geometry)
		if err != nil {
			return err
		}
		layer.LineStrings = append(layer.LineStrings, Feature[LineString]{
			ID: id, Metadata: metadata, Geometries: lines,
		})
	case spec.GeomTypePolygon:
		polygons, err := spec.DecodePolygons(rawFeature.Geometry)
		if err != nil {
			return err
		}
		layer.Polygons = append(layer.Polygons, Feature[Polygon]{
			ID: id, Metadata: metadata, Geometries: polygons,
		})
	default:
		return fmt.Errorf("%w: %d", ErrUnknownGeomType, geomType)
	}
	return nil
}

// resolveTags maps the flat (keyIndex, valueIndex) pairs against the
// layer dictionaries. A key repeated within one feature resolves
// last-write-wins.
func resolveTags(keys []string, values []Val, tags []uint32) (map[string]Val, error) {
	if len(tags)%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrOddTags, len(tags))
	}
	if len(tags) == 0 {
		return nil, nil
	}

	metadata := make(map[string]Val, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		keyIndex, valueIndex := tags[i], tags[i+1]
		if int(keyIndex) >= len(keys) {
			return nil, fmt.Errorf("%w: key %d of %d", ErrTagIndex, keyIndex, len(keys))
		}
		if int(valueIndex) >= len(values) {
			return nil, fmt.Errorf("%w: value %d of %d", ErrTagIndex, valueIndex, len(values))
		}
		metadata[keys[keyIndex]] = values[valueIndex]
	}
	return metadata, nil
}
