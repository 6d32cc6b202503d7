package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/ganeshsahu2020/EcoListing/mb"
	"github.com/google/subcommands"
)

type inspectCmd struct {
	inputPath string
}

func (c *inspectCmd) Name() string     { return "inspect" }
func (c *inspectCmd) Synopsis() string { return "print metadata and tile count of an MBTiles file" }
func (c *inspectCmd) Usage() string {
	return "tilepack inspect -i <path>\n"
}
func (c *inspectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input MBTiles path")
}

func (c *inspectCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" {
		log.Println("missing -i")
		return subcommands.ExitUsageError
	}

	reader, err := mb.NewReader(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer reader.Close()

	metadata, err := reader.ReadMetadata()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	count, err := reader.CountTiles()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	for _, name := range slices.Sorted(maps.Keys(metadata)) {
		fmt.Printf("%s = %s\n", name, metadata[name])
	}
	fmt.Printf("tiles = %d\n", count)

	return subcommands.ExitSuccess
}
