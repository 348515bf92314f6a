package spec

import (
	"errors"
	"fmt"
)

// Point is a tile-local coordinate pair. Coordinates are conventionally
// within [0, extent) but the format does not bound them.
type Point struct {
	X int32
	Y int32
}

// LineString is an ordered sequence of at least 2 points.
type LineString []Point

// Ring is a polygon ring. The closing edge back to the first point is
// implicit and never stored.
type Ring []Point

// Polygon is one exterior ring and zero or more interior rings (holes).
type Polygon struct {
	Exterior Ring
	Holes    []Ring
}

const (
	cmdMoveTo    uint32 = 1
	cmdLineTo    uint32 = 2
	cmdClosePath uint32 = 7

	cmdBits = 3
)

var (
	ErrMalformedGeometry = errors.New("malformed geometry stream")
	ErrEmptyGeometry     = errors.New("empty geometry")
	ErrShortLineString   = errors.New("linestring needs at least 2 points")
	ErrShortRing         = errors.New("ring needs at least 3 points")
)

func zigzag(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

func unzigzag(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// geomReader walks a geometry array keeping the running cursor. The
// cursor persists across subpaths within one feature.
type geomReader struct {
	data []uint32
	pos  int
	x, y int32
}

func (r *geomReader) done() bool {
	return r.pos >= len(r.data)
}

func (r *geomReader) command() (uint32, uint32, error) {
	c := r.data[r.pos]
	r.pos++

	id := c & (1<<cmdBits - 1)
	count := c >> cmdBits

	switch id {
	case cmdMoveTo, cmdLineTo:
		if count == 0 {
			return 0, 0, fmt.Errorf("%w: command %d with count 0", ErrMalformedGeometry, id)
		}
	case cmdClosePath:
		if count != 1 {
			return 0, 0, fmt.Errorf("%w: ClosePath with count %d", ErrMalformedGeometry, count)
		}
	default:
		return 0, 0, fmt.Errorf("%w: unknown command %d", ErrMalformedGeometry, id)
	}

	return id, count, nil
}

func (r *geomReader) point() (Point, error) {
	if r.pos+2 > len(r.data) {
		return Point{}, fmt.Errorf("%w: truncated parameters", ErrMalformedGeometry)
	}
	r.x += unzigzag(r.data[r.pos])
	r.y += unzigzag(r.data[r.pos+1])
	r.pos += 2
	return Point{X: r.x, Y: r.y}, nil
}

// DecodePoints decodes a POINT geometry array. Each MoveTo step is a
// standalone point; LineTo and ClosePath are not allowed.
func DecodePoints(geometry []uint32) ([]Point, error) {
	r := &geomReader{data: geometry}
	var points []Point

	for !r.done() {
		id, count, err := r.command()
		if err != nil {
			return nil, err
		}
		if id != cmdMoveTo {
			return nil, fmt.Errorf("%w: command %d in point geometry", ErrMalformedGeometry, id)
		}
		for range count {
			p, err := r.point()
			if err != nil {
				return nil, err
			}
			points = append(points, p)
		}
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: point geometry", ErrEmptyGeometry)
	}
	return points, nil
}

// DecodeLineStrings decodes a LINESTRING geometry array. Each MoveTo
// step starts a new linestring; ClosePath is not allowed.
func DecodeLineStrings(geometry []uint32) ([]LineString, error) {
	r := &geomReader{data: geometry}
	var lines []LineString
	var current LineString

	flush := func() error {
		if current == nil {
			return nil
		}
		if len(current) < 2 {
			return fmt.Errorf("%w: linestring with %d points", ErrMalformedGeometry, len(current))
		}
		lines = append(lines, current)
		current = nil
		return nil
	}

	for !r.done() {
		id, count, err := r.command()
		if err != nil {
			return nil, err
		}
		switch id {
		case cmdMoveTo:
			for range count {
				if err := flush(); err != nil {
					return nil, err
				}
				p, err := r.point()
				if err != nil {
					return nil, err
				}
				current = LineString{p}
			}
		case cmdLineTo:
			if current == nil {
				return nil, fmt.Errorf("%w: LineTo before MoveTo", ErrMalformedGeometry)
			}
			for range count {
				p, err := r.point()
				if err != nil {
					return nil, err
				}
				current = append(current, p)
			}
		default:
			return nil, fmt.Errorf("%w: ClosePath in linestring geometry", ErrMalformedGeometry)
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: linestring geometry", ErrEmptyGeometry)
	}
	return lines, nil
}

// DecodePolygons decodes a POLYGON geometry array: ring subpaths
// terminated by ClosePath, grouped into polygons by winding order.
func DecodePolygons(geometry []uint32) ([]Polygon, error) {
	rings, err := decodeRings(geometry)
	if err != nil {
		return nil, err
	}
	return assemblePolygons(rings)
}

func decodeRings(geometry []uint32) ([]Ring, error) {
	r := &geomReader{data: geometry}
	var rings []Ring
	var current Ring

	for !r.done() {
		id, count, err := r.command()
		if err != nil {
			return nil, err
		}
		switch id {
		case cmdMoveTo:
			if current != nil {
				return nil, fmt.Errorf("%w: MoveTo before ClosePath", ErrMalformedGeometry)
			}
			if count != 1 {
				return nil, fmt.Errorf("%w: MoveTo with count %d in polygon geometry", ErrMalformedGeometry, count)
			}
			p, err := r.point()
			if err != nil {
				return nil, err
			}
			current = Ring{p}
		case cmdLineTo:
			if current == nil {
				return nil, fmt.Errorf("%w: LineTo before MoveTo", ErrMalformedGeometry)
			}
			for range count {
				p, err := r.point()
				if err != nil {
					return nil, err
				}
				current = append(current, p)
			}
		default:
			if current == nil {
				return nil, fmt.Errorf("%w: ClosePath before MoveTo", ErrMalformedGeometry)
			}
			if len(current) < 3 {
				return nil, fmt.Errorf("%w: ring with %d points", ErrMalformedGeometry, len(current))
			}
			rings = append(rings, current)
			current = nil
		}
	}

	if current != nil {
		return nil, fmt.Errorf("%w: ring without ClosePath", ErrMalformedGeometry)
	}
	if len(rings) == 0 {
		return nil, fmt.Errorf("%w: polygon geometry", ErrEmptyGeometry)
	}
	return rings, nil
}

// geomWriter builds a geometry array, tracking the running cursor.
type geomWriter struct {
	buf  []uint32
	x, y int32
}

func (w *geomWriter) command(id, count uint32) {
	w.buf = append(w.buf, id|count<<cmdBits)
}

func (w *geomWriter) point(p Point) {
	w.buf = append(w.buf, zigzag(p.X-w.x), zigzag(p.Y-w.y))
	w.x, w.y = p.X, p.Y
}

// EncodePoints encodes points as a single MoveTo command. This is the
// canonical form: the same input always yields the same array.
func EncodePoints(points []Point) ([]uint32, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: point geometry", ErrEmptyGeometry)
	}
	w := &geomWriter{}
	w.command(cmdMoveTo, uint32(len(points)))
	for _, p := range points {
		w.point(p)
	}
	return w.buf, nil
}

// EncodeLineStrings encodes each linestring as MoveTo(1) followed by
// one LineTo covering the remaining points. Subpaths are never merged.
func EncodeLineStrings(lines []LineString) ([]uint32, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: linestring geometry", ErrEmptyGeometry)
	}
	w := &geomWriter{}
	for _, line := range lines {
		if len(line) < 2 {
			return nil, fmt.Errorf("%w: got %d", ErrShortLineString, len(line))
		}
		w.command(cmdMoveTo, 1)
		w.point(line[0])
		w.command(cmdLineTo, uint32(len(line)-1))
		for _, p := range line[1:] {
			w.point(p)
		}
	}
	return w.buf, nil
}

// EncodePolygons flattens each polygon's exterior ring and then its
// holes into ring subpaths. Ring winding is verified: a wrongly wound
// ring fails the encode rather than silently changing meaning.
func EncodePolygons(polygons []Polygon) ([]uint32, error) {
	if len(polygons) == 0 {
		return nil, fmt.Errorf("%w: polygon geometry", ErrEmptyGeometry)
	}
	w := &geomWriter{}
	for _, polygon := range polygons {
		if err := w.ring(polygon.Exterior, false); err != nil {
			return nil, err
		}
		for _, hole := range polygon.Holes {
			if err := w.ring(hole, true); err != nil {
				return nil, err
			}
		}
	}
	return w.buf, nil
}

func (w *geomWriter) ring(ring Ring, interior bool) error {
	if len(ring) < 3 {
		return fmt.Errorf("%w: got %d", ErrShortRing, len(ring))
	}
	area2 := ring.SignedArea2()
	if area2 == 0 {
		return fmt.Errorf("%w: zero signed area", ErrDegenerateRing)
	}
	if interior != (area2 < 0) {
		return fmt.Errorf("%w: interior=%v, signed area %d", ErrRingWinding, interior, area2)
	}

	w.command(cmdMoveTo, 1)
	w.point(ring[0])
	w.command(cmdLineTo, uint32(len(ring)-1))
	for _, p := range ring[1:] {
		w.point(p)
	}
	w.command(cmdClosePath, 1)
	return nil
}
