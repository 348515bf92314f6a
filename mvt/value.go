package mvt

import (
	"fmt"

	"github.com/eak1mov/go-libmvt/mvt/spec"
	"google.golang.org/protobuf/proto"
)

// Val is a feature metadata value: exactly one of the seven wire
// variants. The set of implementations is closed; all variants are
// comparable, so Val supports structural equality and map keys.
type Val interface {
	isVal()
}

type String string
type Float float32
type Double float64
type Int int64
type Uint uint64
type Sint int64
type Bool bool

func (String) isVal() {}
func (Float) isVal()  {}
func (Double) isVal() {}
func (Int) isVal()    {}
func (Uint) isVal()   {}
func (Sint) isVal()   {}
func (Bool) isVal()   {}

// valFromRaw converts a raw wire value, enforcing the spec rule that
// exactly one field is populated. Zero or multiple populated fields
// are rejected rather than resolved by a winner rule.
func valFromRaw(raw *spec.Value) (Val, error) {
	var val Val
	populated := 0

	if raw.StringValue != nil {
		val, populated = String(*raw.StringValue), populated+1
	}
	if raw.FloatValue != nil {
		val, populated = Float(*raw.FloatValue), populated+1
	}
	if raw.DoubleValue != nil {
		val, populated = Double(*raw.DoubleValue), populated+1
	}
	if raw.IntValue != nil {
		val, populated = Int(*raw.IntValue), populated+1
	}
	if raw.UintValue != nil {
		val, populated = Uint(*raw.UintValue), populated+1
	}
	if raw.SintValue != nil {
		val, populated = Sint(*raw.SintValue), populated+1
	}
	if raw.BoolValue != nil {
		val, populated = Bool(*raw.BoolValue), populated+1
	}

	if populated != 1 {
		return nil, fmt.Errorf("%w: %d fields populated", ErrValueVariant, populated)
	}
	return val, nil
}

func valToRaw(val Val) (*spec.Value, error) {
	switch v := val.(type) {
	case String:
		return &spec.Value{StringValue: proto.String(string(v))}, nil
	case Float:
		return &spec.Value{FloatValue: proto.Float32(float32(v))}, nil
	case Double:
		return &spec.Value{DoubleValue: proto.Float64(float64(v))}, nil
	case Int:
		return &spec.Value{IntValue: proto.Int64(int64(v))}, nil
	case Uint:
		return &spec.Value{UintValue: proto.Uint64(uint64(v))}, nil
	case Sint:
		return &spec.Value{SintValue: proto.Int64(int64(v))}, nil
	case Bool:
		return &spec.Value{BoolValue: proto.Bool(bool(v))}, nil
	default:
		return nil, fmt.Errorf("%w: nil value", ErrValueVariant)
	}
}
