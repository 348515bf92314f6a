package spec_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eak1mov/go-libmvt/mvt/spec"
)

func TestDecodePolygon(t *testing.T) {
	geometry := []uint32{9, 6, 12, 18, 10, 12, 24, 44, 15}
	polygons, err := spec.DecodePolygons(geometry)
	if err != nil {
		t.Fatalf("DecodePolygons failed: %v", err)
	}
	want := []spec.Polygon{
		{Exterior: spec.Ring{{X: 3, Y: 6}, {X: 8, Y: 12}, {X: 20, Y: 34}}},
	}
	if diff := cmp.Diff(want, polygons); diff != "" {
		t.Errorf("DecodePolygons mismatch (-want+got):\n%v", diff)
	}

	encoded, err := spec.EncodePolygons(polygons)
	if err != nil {
		t.Fatalf("EncodePolygons failed: %v", err)
	}
	if diff := cmp.Diff(geometry, encoded); diff != "" {
		t.Errorf("EncodePolygons mismatch (-want+got):\n%v", diff)
	}
}

// A hole is matched to its exterior by winding order, so the stream
// order of the two rings must not change the decoded polygon.
func TestPolygonHoleOrder(t *testing.T) {
	want := []spec.Polygon{{
		Exterior: spec.Ring{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Holes: []spec.Ring{
			{{X: 2, Y: 2}, {X: 2, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 2}},
		},
	}}

	exteriorFirst := []uint32{
		9, 0, 0, 26, 20, 0, 0, 20, 19, 0, 15,
		9, 4, 15, 26, 0, 8, 8, 0, 0, 7, 15,
	}
	holeFirst := []uint32{
		9, 4, 4, 26, 0, 8, 8, 0, 0, 7, 15,
		9, 11, 3, 26, 20, 0, 0, 20, 19, 0, 15,
	}

	for _, tc := range []struct {
		Name     string
		Geometry []uint32
	}{
		{Name: "ExteriorFirst", Geometry: exteriorFirst},
		{Name: "HoleFirst", Geometry: holeFirst},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			polygons, err := spec.DecodePolygons(tc.Geometry)
			if err != nil {
				t.Fatalf("DecodePolygons failed: %v", err)
			}
			if diff := cmp.Diff(want, polygons); diff != "" {
				t.Errorf("DecodePolygons mismatch (-want+got):\n%v", diff)
			}
		})
	}
}

func TestSignedAreaRotation(t *testing.T) {
	ring := spec.Ring{{X: 3, Y: 6}, {X: 8, Y: 12}, {X: 20, Y: 34}, {X: 5, Y: 40}}
	want := ring.SignedArea2()
	if want == 0 {
		t.Fatal("test ring must not be degenerate")
	}

	for shift := 1; shift < len(ring); shift++ {
		rotated := append(spec.Ring{}, ring[shift:]...)
		rotated = append(rotated, ring[:shift]...)
		if got := rotated.SignedArea2(); got != want {
			t.Errorf("SignedArea2 after rotation by %d = %d, want = %d", shift, got, want)
		}
	}
}

func TestDegenerateRing(t *testing.T) {
	// collinear: (0,0) -> (2,2) -> (4,4)
	_, err := spec.DecodePolygons([]uint32{9, 0, 0, 18, 4, 4, 4, 4, 15})
	if !errors.Is(err, spec.ErrDegenerateRing) {
		t.Errorf("err = %v, want %v", err, spec.ErrDegenerateRing)
	}
}

func TestOrphanHole(t *testing.T) {
	// a single interior-wound ring and no exterior at all
	_, err := spec.DecodePolygons([]uint32{9, 4, 4, 26, 0, 8, 8, 0, 0, 7, 15})
	if !errors.Is(err, spec.ErrOrphanHole) {
		t.Errorf("err = %v, want %v", err, spec.ErrOrphanHole)
	}
}

func TestEncodeWinding(t *testing.T) {
	reversed := spec.Polygon{
		Exterior: spec.Ring{{X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}},
	}
	if _, err := spec.EncodePolygons([]spec.Polygon{reversed}); !errors.Is(err, spec.ErrRingWinding) {
		t.Errorf("err = %v, want %v", err, spec.ErrRingWinding)
	}

	degenerate := spec.Polygon{
		Exterior: spec.Ring{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 4, Y: 4}},
	}
	if _, err := spec.EncodePolygons([]spec.Polygon{degenerate}); !errors.Is(err, spec.ErrDegenerateRing) {
		t.Errorf("err = %v, want %v", err, spec.ErrDegenerateRing)
	}
}

func TestPolygonsRoundTrip(t *testing.T) {
	polygons := []spec.Polygon{
		{
			Exterior: spec.Ring{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
			Holes: []spec.Ring{
				{{X: 2, Y: 2}, {X: 2, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 2}},
			},
		},
		{
			Exterior: spec.Ring{{X: 20, Y: 20}, {X: 30, Y: 20}, {X: 25, Y: 30}},
		},
	}
	encoded, err := spec.EncodePolygons(polygons)
	if err != nil {
		t.Fatalf("EncodePolygons failed: %v", err)
	}
	decoded, err := spec.DecodePolygons(encoded)
	if err != nil {
		t.Fatalf("DecodePolygons failed: %v", err)
	}
	if diff := cmp.Diff(polygons, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want+got):\n%v", diff)
	}
}
