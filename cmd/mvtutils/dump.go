package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/eak1mov/go-libtiles/mb"
	"github.com/eak1mov/go-libtiles/pm"
	"github.com/eak1mov/go-libtiles/tile"
	"github.com/google/subcommands"

	"github.com/eak1mov/go-libmvt/geojson"
	"github.com/eak1mov/go-libmvt/mvt"
	"github.com/eak1mov/go-libmvt/mvt/spec"
)

type dumpCmd struct {
	inputFormat string
	inputPath   string
	z, x, y     uint
}

func (c *dumpCmd) Name() string     { return "dump" }
func (c *dumpCmd) Synopsis() string { return "decode a vector tile and print it as GeoJSON" }
func (c *dumpCmd) Usage() string {
	return "mvtutils dump -i <path> [-if <format>] [-z <zoom> -x <col> -y <row>]\n"
}
func (c *dumpCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format (mvt, mbtiles, pmtiles)")
	f.UintVar(&c.z, "z", 0, "Tile zoom (mbtiles, pmtiles)")
	f.UintVar(&c.x, "x", 0, "Tile column (mbtiles, pmtiles)")
	f.UintVar(&c.y, "y", 0, "Tile row (mbtiles, pmtiles)")
}

func (c *dumpCmd) readTile() ([]byte, error) {
	var reader tile.Reader
	var err error

	switch deduceFormat(c.inputFormat, c.inputPath) {
	case "mvt":
		return os.ReadFile(c.inputPath)
	case "mbtiles":
		reader, err = mb.NewReader(c.inputPath)
	case "pmtiles":
		reader, err = pm.NewFileReader(c.inputPath)
	default:
		return nil, fmt.Errorf("invalid input format: %q", c.inputFormat)
	}
	if err != nil {
		return nil, err
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	tileID := tile.ID{X: uint32(c.x), Y: uint32(c.y), Z: uint32(c.z)}
	tileData, err := reader.ReadTile(tileID)
	if err != nil {
		return nil, err
	}
	if len(tileData) == 0 {
		return nil, fmt.Errorf("tile %v/%v/%v not found", c.z, c.x, c.y)
	}
	return tileData, nil
}

func (c *dumpCmd) dump() error {
	tileData, err := c.readTile()
	if err != nil {
		return err
	}

	tileData, err = spec.Decompress(tileData, spec.DetectCompression(tileData))
	if err != nil {
		return err
	}

	vectorTile, err := mvt.Unmarshal(tileData)
	if err != nil {
		return err
	}

	for i := range vectorTile.Layers {
		layer := &vectorTile.Layers[i]
		jsonBytes, err := json.MarshalIndent(geojson.FromLayer(layer), "", "    ")
		if err != nil {
			return err
		}
		fmt.Printf("layer %q (version %v, extent %v):\n", layer.Name, layer.Version, layer.Extent)
		fmt.Println(string(jsonBytes))
	}
	return nil
}

func (c *dumpCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := c.dump(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
