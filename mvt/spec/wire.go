package spec

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers from vector_tile.proto (spec 2.1).
const (
	tileLayersField = 3

	layerNameField     = 1
	layerFeaturesField = 2
	layerKeysField     = 3
	layerValuesField   = 4
	layerExtentField   = 5
	layerVersionField  = 15

	featureIDField       = 1
	featureTagsField     = 2
	featureTypeField     = 3
	featureGeometryField = 4

	valueStringField = 1
	valueFloatField  = 2
	valueDoubleField = 3
	valueIntField    = 4
	valueUintField   = 5
	valueSintField   = 6
	valueBoolField   = 7
)

var ErrInvalidTile = errors.New("invalid tile data")

// SerializeTile encodes the raw tile into protobuf wire bytes.
// Known fields are written in field-number order; preserved unknown
// fields of each message are appended after its known fields.
func SerializeTile(tile *Tile) []byte {
	buf := make([]byte, 0)
	for _, layer := range tile.Layers {
		buf = appendMessage(buf, tileLayersField, serializeLayer(layer))
	}
	return append(buf, tile.Unknown...)
}

func appendMessage(buf []byte, num protowire.Number, payload []byte) []byte {
	buf = protowire.AppendTag(buf, num, protowire.BytesType)
	return protowire.AppendBytes(buf, payload)
}

func appendString(buf []byte, num protowire.Number, v string) []byte {
	buf = protowire.AppendTag(buf, num, protowire.BytesType)
	return protowire.AppendString(buf, v)
}

func appendVarint(buf []byte, num protowire.Number, v uint64) []byte {
	buf = protowire.AppendTag(buf, num, protowire.VarintType)
	return protowire.AppendVarint(buf, v)
}

func serializeLayer(layer *Layer) []byte {
	buf := make([]byte, 0)
	if layer.Name != nil {
		buf = appendString(buf, layerNameField, *layer.Name)
	}
	for _, feature := range layer.Features {
		buf = appendMessage(buf, layerFeaturesField, serializeFeature(feature))
	}
	for _, key := range layer.Keys {
		buf = appendString(buf, layerKeysField, key)
	}
	for _, value := range layer.Values {
		buf = appendMessage(buf, layerValuesField, serializeValue(value))
	}
	if layer.Extent != nil {
		buf = appendVarint(buf, layerExtentField, uint64(*layer.Extent))
	}
	if layer.Version != nil {
		buf = appendVarint(buf, layerVersionField, uint64(*layer.Version))
	}
	return append(buf, layer.Unknown...)
}

func serializeFeature(feature *Feature) []byte {
	buf := make([]byte, 0)
	if feature.ID != nil {
		buf = appendVarint(buf, featureIDField, *feature.ID)
	}
	if len(feature.Tags) > 0 {
		buf = appendMessage(buf, featureTagsField, packUint32(feature.Tags))
	}
	if feature.Type != nil {
		buf = appendVarint(buf, featureTypeField, uint64(*feature.Type))
	}
	if len(feature.Geometry) > 0 {
		buf = appendMessage(buf, featureGeometryField, packUint32(feature.Geometry))
	}
	return append(buf, feature.Unknown...)
}

func serializeValue(value *Value) []byte {
	buf := make([]byte, 0)
	if value.StringValue != nil {
		buf = appendString(buf, valueStringField, *value.StringValue)
	}
	if value.FloatValue != nil {
		buf = protowire.AppendTag(buf, valueFloatField, protowire.Fixed32Type)
		buf = protowire.AppendFixed32(buf, math.Float32bits(*value.FloatValue))
	}
	if value.DoubleValue != nil {
		buf = protowire.AppendTag(buf, valueDoubleField, protowire.Fixed64Type)
		buf = protowire.AppendFixed64(buf, math.Float64bits(*value.DoubleValue))
	}
	if value.IntValue != nil {
		buf = appendVarint(buf, valueIntField, uint64(*value.IntValue))
	}
	if value.UintValue != nil {
		buf = appendVarint(buf, valueUintField, *value.UintValue)
	}
	if value.SintValue != nil {
		buf = appendVarint(buf, valueSintField, protowire.EncodeZigZag(*value.SintValue))
	}
	if value.BoolValue != nil {
		buf = appendVarint(buf, valueBoolField, protowire.EncodeBool(*value.BoolValue))
	}
	return append(buf, value.Unknown...)
}

func packUint32(values []uint32) []byte {
	buf := make([]byte, 0, len(values))
	for _, v := range values {
		buf = protowire.AppendVarint(buf, uint64(v))
	}
	return buf
}

// DeserializeTile decodes protobuf wire bytes into the raw tile model.
// Fields outside the 2.1 schema (and fields with an unexpected wire
// type) are kept verbatim in the Unknown tail of their message.
func DeserializeTile(data []byte) (*Tile, error) {
	tile := &Tile{}
	for len(data) > 0 {
		num, typ, field, raw, rest, err := consumeField(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTile, err)
		}
		switch {
		case num == tileLayersField && typ == protowire.BytesType:
			payload, _ := protowire.ConsumeBytes(field)
			layer, err := deserializeLayer(payload)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidTile, err)
			}
			tile.Layers = append(tile.Layers, layer)
		default:
			tile.Unknown = append(tile.Unknown, raw...)
		}
		data = rest
	}
	return tile, nil
}

// consumeField reads one field: its number, wire type, value bytes
// (without the tag), the raw bytes including the tag, and the rest of
// the buffer. The value is framing-validated but not interpreted.
func consumeField(data []byte) (protowire.Number, protowire.Type, []byte, []byte, []byte, error) {
	num, typ, n := protowire.ConsumeTag(data)
	if n < 0 {
		return 0, 0, nil, nil, nil, protowire.ParseError(n)
	}
	m := protowire.ConsumeFieldValue(num, typ, data[n:])
	if m < 0 {
		return 0, 0, nil, nil, nil, protowire.ParseError(m)
	}
	return num, typ, data[n : n+m], data[:n+m], data[n+m:], nil
}

func deserializeLayer(data []byte) (*Layer, error) {
	layer := &Layer{}
	for len(data) > 0 {
		num, typ, field, raw, rest, err := consumeField(data)
		if err != nil {
			return nil, err
		}
		switch {
		case num == layerNameField && typ == protowire.BytesType:
			v, _ := protowire.ConsumeString(field)
			layer.Name = &v
		case num == layerFeaturesField && typ == protowire.BytesType:
			payload, _ := protowire.ConsumeBytes(field)
			feature, err := deserializeFeature(payload)
			if err != nil {
				return nil, err
			}
			layer.Features = append(layer.Features, feature)
		case num == layerKeysField && typ == protowire.BytesType:
			v, _ := protowire.ConsumeString(field)
			layer.Keys = append(layer.Keys, v)
		case num == layerValuesField && typ == protowire.BytesType:
			payload, _ := protowire.ConsumeBytes(field)
			value, err := deserializeValue(payload)
			if err != nil {
				return nil, err
			}
			layer.Values = append(layer.Values, value)
		case num == layerExtentField && typ == protowire.VarintType:
			v, _ := protowire.ConsumeVarint(field)
			extent := uint32(v)
			layer.Extent = &extent
		case num == layerVersionField && typ == protowire.VarintType:
			v, _ := protowire.ConsumeVarint(field)
			version := uint32(v)
			layer.Version = &version
		default:
			layer.Unknown = append(layer.Unknown, raw...)
		}
		data = rest
	}
	return layer, nil
}

func deserializeFeature(data []byte) (*Feature, error) {
	feature := &Feature{}
	for len(data) > 0 {
		num, typ, field, raw, rest, err := consumeField(data)
		if err != nil {
			return nil, err
		}
		switch {
		case num == featureIDField && typ == protowire.VarintType:
			v, _ := protowire.ConsumeVarint(field)
			feature.ID = &v
		case num == featureTagsField && (typ == protowire.VarintType || typ == protowire.BytesType):
			feature.Tags, err = appendPackedUint32(feature.Tags, typ, field)
			if err != nil {
				return nil, err
			}
		case num == featureTypeField && typ == protowire.VarintType:
			v, _ := protowire.ConsumeVarint(field)
			geomType := GeomType(v)
			feature.Type = &geomType
		case num == featureGeometryField && (typ == protowire.VarintType || typ == protowire.BytesType):
			feature.Geometry, err = appendPackedUint32(feature.Geometry, typ, field)
			if err != nil {
				return nil, err
			}
		default:
			feature.Unknown = append(feature.Unknown, raw...)
		}
		data = rest
	}
	return feature, nil
}

// appendPackedUint32 accepts both the packed form and individual
// varint fields, as protobuf parsers must.
func appendPackedUint32(values []uint32, typ protowire.Type, field []byte) ([]uint32, error) {
	switch typ {
	case protowire.VarintType:
		v, _ := protowire.ConsumeVarint(field)
		return append(values, uint32(v)), nil
	case protowire.BytesType:
		payload, _ := protowire.ConsumeBytes(field)
		for len(payload) > 0 {
			v, n := protowire.ConsumeVarint(payload)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			values = append(values, uint32(v))
			payload = payload[n:]
		}
		return values, nil
	default:
		return nil, fmt.Errorf("unexpected wire type %v for packed uint32 field", typ)
	}
}

func deserializeValue(data []byte) (*Value, error) {
	value := &Value{}
	for len(data) > 0 {
		num, typ, field, raw, rest, err := consumeField(data)
		if err != nil {
			return nil, err
		}
		switch {
		case num == valueStringField && typ == protowire.BytesType:
			v, _ := protowire.ConsumeString(field)
			value.StringValue = &v
		case num == valueFloatField && typ == protowire.Fixed32Type:
			bits, _ := protowire.ConsumeFixed32(field)
			f := math.Float32frombits(bits)
			value.FloatValue = &f
		case num == valueDoubleField && typ == protowire.Fixed64Type:
			bits, _ := protowire.ConsumeFixed64(field)
			f := math.Float64frombits(bits)
			value.DoubleValue = &f
		case num == valueIntField && typ == protowire.VarintType:
			v, _ := protowire.ConsumeVarint(field)
			i := int64(v)
			value.IntValue = &i
		case num == valueUintField && typ == protowire.VarintType:
			v, _ := protowire.ConsumeVarint(field)
			value.UintValue = &v
		case num == valueSintField && typ == protowire.VarintType:
			v, _ := protowire.ConsumeVarint(field)
			i := protowire.DecodeZigZag(v)
			value.SintValue = &i
		case num == valueBoolField && typ == protowire.VarintType:
			v, _ := protowire.ConsumeVarint(field)
			b := protowire.DecodeBool(v)
			value.BoolValue = &b
		default:
			value.Unknown = append(value.Unknown, raw...)
		}
		data = rest
	}
	return value, nil
}
