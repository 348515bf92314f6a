// Package internal provides shared test inputs for the codec packages.
package internal

import "github.com/eak1mov/go-libmvt/mvt"

// SampleTile returns a small tile exercising every geometry kind and
// every value variant. Coordinates fit a 4096 extent.
func SampleTile() *mvt.VectorTile {
	return &mvt.VectorTile{Layers: []mvt.Layer{
		{
			Version: 2,
			Name:    "poi",
			Extent:  4096,
			Points: []mvt.Feature[mvt.Point]{
				{
					ID: 7,
					Metadata: map[string]mvt.Val{
						"name": mvt.String("fountain"),
						"rank": mvt.Int(3),
					},
					Geometries: []mvt.Point{{X: 25, Y: 17}},
				},
				{
					Metadata: map[string]mvt.Val{
						"name": mvt.String("benches"),
						"rank": mvt.Int(3),
					},
					Geometries: []mvt.Point{{X: 5, Y: 7}, {X: 3, Y: 2}},
				},
			},
		},
		{
			Version: 2,
			Name:    "roads",
			Extent:  4096,
			LineStrings: []mvt.Feature[mvt.LineString]{
				{
					ID: 42,
					Metadata: map[string]mvt.Val{
						"oneway":   mvt.Bool(true),
						"lanes":    mvt.Uint(2),
						"grade":    mvt.Float(1.5),
						"length":   mvt.Double(123.25),
						"offset":   mvt.Sint(-5),
						"priority": mvt.Int(-1),
					},
					Geometries: []mvt.LineString{
						{{X: 2, Y: 2}, {X: 2, Y: 10}, {X: 10, Y: 10}},
						{{X: 1, Y: 1}, {X: 3, Y: 5}},
					},
				},
			},
			Polygons: []mvt.Feature[mvt.Polygon]{
				{
					ID: 1,
					Metadata: map[string]mvt.Val{
						"kind": mvt.String("park"),
					},
					Geometries: []mvt.Polygon{
						{
							Exterior: mvt.Ring{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
							Holes: []mvt.Ring{
								{{X: 2, Y: 2}, {X: 2, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 2}},
							},
						},
					},
				},
			},
		},
	}}
}
