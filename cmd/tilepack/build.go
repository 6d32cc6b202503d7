package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/ganeshsahu2020/EcoListing/internal/config"
	"github.com/ganeshsahu2020/EcoListing/pack"
	"github.com/ganeshsahu2020/EcoListing/tile"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type buildCmd struct {
	configPath     string
	inputPath      string
	outputPath     string
	batchSize      int
	computedBounds bool
	quiet          bool
}

func (c *buildCmd) Name() string     { return "build" }
func (c *buildCmd) Synopsis() string { return "pack a z/x/y tile tree into an MBTiles file" }
func (c *buildCmd) Usage() string {
	return "tilepack build [-config <path>] [-i <dir>] [-o <path>] [-batch <n>] [-computed-bounds] [-q]\n"
}
func (c *buildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "YAML config file path")
	f.StringVar(&c.inputPath, "i", "", "Input tile tree root (overrides source.root)")
	f.StringVar(&c.outputPath, "o", "", "Output MBTiles path (overrides archive.path)")
	f.IntVar(&c.batchSize, "batch", -1, "Tiles per transaction, 0 for one transaction (overrides writer.batch_size)")
	f.BoolVar(&c.computedBounds, "computed-bounds", false, "Derive bounds and center from the tiles")
	f.BoolVar(&c.quiet, "q", false, "Do not show progress")
}

func (c *buildCmd) config() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.inputPath != "" {
		cfg.Source.Root = c.inputPath
	}
	if c.outputPath != "" {
		cfg.Archive.Path = c.outputPath
	}
	if c.batchSize >= 0 {
		cfg.Writer.BatchSize = c.batchSize
	}
	if c.computedBounds {
		cfg.Archive.ComputedBounds = true
	}
	return cfg, cfg.Validate()
}

func (c *buildCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := c.config()
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	logger, err := initLogger(cfg.Logger)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(!c.quiet),
	)

	opts := append(cfg.BuilderOptions(),
		pack.WithLogger(logger),
		pack.WithProgress(func(tile.ID) { bar.Add(1) }),
	)
	summary, err := pack.New(opts...).Build(cfg.Source.Root, cfg.Archive.Path)

	bar.Finish()
	if !c.quiet {
		fmt.Println()
	}

	if err != nil {
		logger.Error("build failed", "root", cfg.Source.Root, "output", cfg.Archive.Path, "error", err)
		return subcommands.ExitFailure
	}

	logger.Debug("build done", "tiles", summary.TileCount, "zooms", summary.Zooms)
	fmt.Printf("Wrote %s minzoom=%d maxzoom=%d\n", cfg.Archive.Path, summary.MinZoom, summary.MaxZoom)
	return subcommands.ExitSuccess
}
