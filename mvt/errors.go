package mvt

import "errors"

var (
	ErrUnknownGeomType = errors.New("unsupported geometry type")
	ErrOddTags         = errors.New("odd tags array length")
	ErrTagIndex        = errors.New("tag index out of range")
	ErrValueVariant    = errors.New("value must have exactly one field populated")
	ErrNoGeometry      = errors.New("feature without geometry")
)
