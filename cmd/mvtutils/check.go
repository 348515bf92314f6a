package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/eak1mov/go-libtiles/mb"
	"github.com/eak1mov/go-libtiles/pm"
	"github.com/eak1mov/go-libtiles/tile"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"

	"github.com/eak1mov/go-libmvt/mvt"
	"github.com/eak1mov/go-libmvt/mvt/spec"
)

type checkCmd struct {
	inputFormat string
	inputPath   string
}

func (c *checkCmd) Name() string     { return "check" }
func (c *checkCmd) Synopsis() string { return "decode every tile in a tileset and report failures" }
func (c *checkCmd) Usage() string {
	return "mvtutils check -i <path> [-if <format>]\n"
}
func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format (mbtiles, pmtiles)")
}

func (c *checkCmd) check(reader tile.Visitor) (int, error) {
	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	badTiles := 0

	err := reader.VisitTiles(func(tileID tile.ID, tileData []byte) error {
		bar.Add(1)

		tileData, err := spec.Decompress(tileData, spec.DetectCompression(tileData))
		if err == nil {
			_, err = mvt.Unmarshal(tileData)
		}
		if err != nil {
			badTiles++
			log.Printf("tile %v/%v/%v: %v", tileID.Z, tileID.X, tileID.Y, err)
		}
		return nil
	})

	bar.Finish()
	fmt.Println()

	return badTiles, err
}

func (c *checkCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	var err error
	var reader tile.Visitor

	switch deduceFormat(c.inputFormat, c.inputPath) {
	case "mbtiles":
		reader, err = mb.NewReader(c.inputPath)
	case "pmtiles":
		reader, err = pm.NewFileReader(c.inputPath)
	default:
		log.Printf("invalid input format: %q", c.inputFormat)
		return subcommands.ExitFailure
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	badTiles, err := c.check(reader)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if badTiles > 0 {
		log.Printf("%d malformed tiles", badTiles)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
