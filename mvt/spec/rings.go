package spec

import (
	"errors"
	"fmt"
)

var (
	ErrDegenerateRing = errors.New("degenerate ring")
	ErrOrphanHole     = errors.New("interior ring without exterior")
	ErrRingWinding    = errors.New("wrong ring winding")
)

// SignedArea2 returns twice the signed area of the ring, computed with
// the shoelace formula over the implicitly closed point sequence.
// Per MVT 2.1 an exterior ring has positive area, an interior ring
// negative. The sign is invariant under rotation of the start point.
func (r Ring) SignedArea2() int64 {
	var sum int64
	for i, p := range r {
		q := r[(i+1)%len(r)]
		sum += int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
	}
	return sum
}

// assemblePolygons groups decoded rings into polygons by the sign of
// their area, not by position in the stream. A hole normally belongs
// to the most recently started exterior; holes preceding the first
// exterior attach to the first one that follows, so that reordering
// rings of a single polygon does not change the result. A feature
// containing holes but no exterior at all is rejected.
func assemblePolygons(rings []Ring) ([]Polygon, error) {
	var polygons []Polygon
	var pending []Ring

	for i, ring := range rings {
		area2 := ring.SignedArea2()
		switch {
		case area2 > 0:
			polygons = append(polygons, Polygon{Exterior: ring, Holes: pending})
			pending = nil
		case area2 < 0:
			if len(polygons) > 0 {
				last := &polygons[len(polygons)-1]
				last.Holes = append(last.Holes, ring)
			} else {
				pending = append(pending, ring)
			}
		default:
			return nil, fmt.Errorf("%w: ring %d has zero signed area", ErrDegenerateRing, i)
		}
	}

	if pending != nil {
		return nil, ErrOrphanHole
	}
	return polygons, nil
}
