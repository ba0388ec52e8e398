package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"

	"github.com/poiesic/realsearch/ai"
	"github.com/poiesic/realsearch/ai/openai"
	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/ingestion"
	"github.com/poiesic/realsearch/storage/badger"
)

var propertyListings = []string{
	"123 Maple St, Dallas, TX. 3 bed 2 bath single family home, 1850 sqft, listed at $410,000 by agent Jane Smith.",
	"456 Oak Ave, Dallas, TX. 4 bed 3 bath single family home, 2600 sqft, listed at $575,000.",
	"789 Cedar Ln, Plano, TX. 2 bed 2 bath condo, 1100 sqft, listed at $265,000 with HOA of $240/month.",
	"12 Riverwalk Pl, Austin, TX. 1 bed 1 bath downtown condo, 720 sqft, listed at $330,000.",
	"3401 S Congress Ave Unit 8, Austin, TX. 2 bed 2 bath townhome, 1350 sqft, listed at $489,000.",
	"901 Hillcrest Dr, Fort Worth, TX. 3 bed 2 bath ranch, 1700 sqft, listed at $348,000, new roof in 2024.",
	"220 Palm Way, Tampa, FL. 3 bed 2 bath single family home, 1600 sqft, listed at $385,000 near the bay.",
	"77 Seabreeze Ct, Tampa, FL. 2 bed 2 bath condo with gulf views, 1050 sqft, listed at $295,000.",
	"1500 Walnut St Unit 12B, Denver, CO. 2 bed 2 bath loft, 1200 sqft, listed at $520,000.",
	"48 Aspen Ridge Rd, Denver, CO. 4 bed 3 bath single family home, 2900 sqft, listed at $745,000.",
	"610 Magnolia Blvd, Houston, TX. 3 bed 2 bath bungalow, 1550 sqft, listed at $329,000 by agent Carlos Vega.",
	"18 Harbor View Dr, San Diego, CA. 3 bed 2 bath coastal home, 1750 sqft, listed at $1,150,000.",
}

var marketReports = []string{
	"Dallas, TX market update: median sale price $425,000, up 3.2% year over year. Inventory count 5,480 active listings, days on market averaging 31.",
	"Austin, TX market update: median sale price $540,000, down 1.1% year over year. Months of supply at 3.8, new listings up 7% from last quarter.",
	"Plano, TX market update: median sale price $465,000. Price per square foot $231. Days on market averaging 26.",
	"Fort Worth, TX market update: median sale price $345,000, up 2.5% year over year. Inventory count 3,120 active listings.",
	"Tampa, FL market update: median sale price $399,000, up 4.8% year over year. Strong rental demand with average cap rate of 5.9% on small multifamily.",
	"Denver, CO market update: median sale price $612,000, flat year over year. Months of supply at 2.9, sales volume down 6% from last spring.",
	"Houston, TX market update: median sale price $338,000, up 1.9% year over year. Days on market averaging 38, inventory count 8,900 active listings.",
	"San Diego, CA market update: median sale price $925,000, up 5.4% year over year. Price per square foot $689, months of supply at 2.1.",
	"Texas investment outlook: single family rentals in the Dallas metro average 6.1% gross yield, with strongest cash flow in the northeast suburbs.",
	"Florida investment outlook: Tampa metro condos show 7.2% projected ROI for 2026 with appreciation expected to moderate to 3% annually.",
}

var (
	seedFileName = flag.String("src", "", "file of market report seed data, one report per line")
	dbPath       = flag.String("db", "./realsearch_db", "path to BadgerDB database directory")
	embedHost    = flag.String("embedding-host", "http://localhost:11434/v1", "embedding service host URL")
	embedModel   = flag.String("embedding-model", "embeddinggemma", "embedding model name")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// ingestBatched reads from a source iterator and ingests chunks in batches.
// The synchronous path is used so the process cannot exit before the last
// batch is embedded and indexed.
func ingestBatched(ctx context.Context, pipeline *ingestion.Pipeline, chunkType core.ChunkType, source iter.Seq[string], batchSize int) error {
	batch := make([]*core.DocumentChunk, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := pipeline.IngestChunks(ctx, batch...); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	for line := range source {
		batch = append(batch, &core.DocumentChunk{
			Content:   line,
			ChunkType: chunkType,
		})
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}

func main() {
	index, err := badger.NewVectorIndex(*dbPath)
	if err != nil {
		panic(err)
	}
	defer index.Close()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(*embedHost),
		ai.WithEmbeddingModel(*embedModel),
	)
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		panic(err)
	}

	pipeline, err := ingestion.NewPipeline(index, embedder)
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()

	if *seedFileName != "" {
		source, err := linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
		if err := ingestBatched(ctx, pipeline, core.ChunkMarket, source, 5); err != nil {
			panic(err)
		}
		return
	}

	// Built-in sample corpus: property listings plus market reports.
	if err := ingestBatched(ctx, pipeline, core.ChunkProperty, linesFromSlice(propertyListings), 5); err != nil {
		panic(err)
	}
	if err := ingestBatched(ctx, pipeline, core.ChunkMarket, linesFromSlice(marketReports), 5); err != nil {
		panic(err)
	}
}
