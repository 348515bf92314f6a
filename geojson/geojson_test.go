package geojson_test

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/eak1mov/go-libmvt/geojson"
	"github.com/eak1mov/go-libmvt/internal"
	"github.com/eak1mov/go-libmvt/mvt"
)

func TestFromTile(t *testing.T) {
	layers := geojson.FromTile(internal.SampleTile())
	require.Len(t, layers, 2)
	require.Contains(t, layers, "poi")
	require.Contains(t, layers, "roads")

	poi := layers["poi"]
	require.Len(t, poi.Features, 2)

	single := poi.Features[0]
	require.Equal(t, orb.Point{25, 17}, single.Geometry)
	require.Equal(t, uint64(7), single.ID)
	require.Equal(t, "fountain", single.Properties["name"])
	require.Equal(t, int64(3), single.Properties["rank"])

	multi := poi.Features[1]
	require.Equal(t, orb.MultiPoint{{5, 7}, {3, 2}}, multi.Geometry)
	require.Nil(t, multi.ID)
}

func TestFromLayerGeometries(t *testing.T) {
	tile := internal.SampleTile()
	roads := geojson.FromLayer(&tile.Layers[1])
	require.Len(t, roads.Features, 2)

	lines := roads.Features[0]
	require.IsType(t, orb.MultiLineString{}, lines.Geometry)
	require.Equal(t, true, lines.Properties["oneway"])
	require.Equal(t, uint64(2), lines.Properties["lanes"])
	require.Equal(t, int64(-5), lines.Properties["offset"])

	park := roads.Features[1]
	polygon, ok := park.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, polygon, 2)
	for _, ring := range polygon {
		// GeoJSON rings repeat the first position at the end
		require.Equal(t, ring[0], ring[len(ring)-1])
		require.Len(t, ring, 5)
	}
}

func TestSingleAndMultiGeometries(t *testing.T) {
	layer := mvt.NewLayer("lines")
	layer.LineStrings = append(layer.LineStrings, mvt.Feature[mvt.LineString]{
		Geometries: []mvt.LineString{{{X: 0, Y: 0}, {X: 1, Y: 1}}},
	})

	fc := geojson.FromLayer(&layer)
	require.Len(t, fc.Features, 1)
	require.Equal(t, orb.LineString{{0, 0}, {1, 1}}, fc.Features[0].Geometry)
}

// The decoder never produces empty rings, but FromLayer also accepts
// caller-built layers and must not panic on them.
func TestEmptyRing(t *testing.T) {
	layer := mvt.NewLayer("degenerate")
	layer.Polygons = append(layer.Polygons, mvt.Feature[mvt.Polygon]{
		Geometries: []mvt.Polygon{{
			Exterior: mvt.Ring{},
			Holes:    []mvt.Ring{{}},
		}},
	})

	fc := geojson.FromLayer(&layer)
	require.Len(t, fc.Features, 1)
	polygon, ok := fc.Features[0].Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, polygon, 2)
	for _, ring := range polygon {
		require.Empty(t, ring)
	}
}

func TestMarshalJSON(t *testing.T) {
	for name, fc := range geojson.FromTile(internal.SampleTile()) {
		data, err := json.Marshal(fc)
		require.NoErrorf(t, err, "layer %q", name)
		require.NotEmpty(t, data)
	}
}
