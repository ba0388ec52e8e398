// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/realsearch"
	"github.com/poiesic/realsearch/ai"
	"github.com/poiesic/realsearch/ai/openai"
	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/reembed"
	"github.com/poiesic/realsearch/storage/badger"
	"github.com/poiesic/realsearch/storage/neo4j"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "realsearch",
		Usage: "Query routing and fusion over real-estate vector and graph stores",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Route a query and print fused, ranked evidence",
				ArgsUsage: "<query text>",
				Action:    searchCommand,
				Flags: append(connectionFlags(),
					&cli.StringFlag{
						Name:  "role",
						Usage: "Caller persona (investor, buyer, developer, agent)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "property-type",
						Usage: "Filter results to one property type",
					},
					&cli.Float64Flag{
						Name:  "price-min",
						Usage: "Filter results to prices at or above this value",
					},
					&cli.Float64Flag{
						Name:  "price-max",
						Usage: "Filter results to prices at or below this value",
					},
				),
			},
			{
				Name:      "validate",
				Usage:     "Check a generated answer against retrieved evidence",
				ArgsUsage: "<query text>",
				Action:    validateCommand,
				Flags: append(connectionFlags(),
					&cli.StringFlag{
						Name:     "answer",
						Aliases:  []string{"a"},
						Usage:    "Generated answer to validate",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of evidence results",
						Value: 10,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Confidence threshold for passing validation",
						Value: 0.7,
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Re-embed stored document chunks with a new embedding model",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "Maximum attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "only-missing",
						Usage: "Only embed chunks that have no vector yet",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// connectionFlags are shared by the commands that need the full engine.
func connectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "graph-uri",
			Usage: "Graph database URI",
			Value: "bolt://localhost:7687",
		},
		&cli.StringFlag{
			Name:  "graph-user",
			Usage: "Graph database user",
			Value: "neo4j",
		},
		&cli.StringFlag{
			Name:  "graph-password",
			Usage: "Graph database password",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
	}
}

func openEngine(ctx context.Context, c *cli.Context, opts ...realsearch.EngineOption) (*realsearch.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	graphConfig := neo4j.Config{
		URI:      c.String("graph-uri"),
		User:     c.String("graph-user"),
		Password: c.String("graph-password"),
	}

	opts = append(opts, realsearch.WithAIConfig(aiConfig))
	return realsearch.NewEngine(ctx, c.String("db"), graphConfig, opts...)
}

func queryFromArgs(c *cli.Context) (core.Query, error) {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return core.Query{}, fmt.Errorf("query text is required")
	}

	query := core.Query{
		Text: text,
		Role: core.UserRole(c.String("role")),
		Filters: core.Filters{
			PropertyType: c.String("property-type"),
			PriceMin:     c.Float64("price-min"),
			PriceMax:     c.Float64("price-max"),
		},
	}
	return query, nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query, err := queryFromArgs(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close(ctx)

	results, err := engine.RouteAndSearch(ctx, query, c.Int("limit"))
	if err != nil {
		if errors.Is(err, core.ErrNoEvidenceFound) {
			fmt.Printf("No evidence found (strategy: %s)\n", results.Strategy)
			return nil
		}
		return err
	}

	fmt.Printf("Strategy: %s\n", results.Strategy)
	fmt.Printf("Found %d hits\n", len(results.Results))
	for _, hit := range results.Results {
		sources := make([]string, len(hit.Sources))
		for i, s := range hit.Sources {
			sources[i] = string(s)
		}
		fmt.Printf("%d: '%s' [%0.3f] (%s)\n",
			hit.Rank, hit.Content, hit.CombinedScore, strings.Join(sources, "+"))
	}
	return nil
}

func validateCommand(c *cli.Context) error {
	ctx := context.Background()

	query, err := queryFromArgs(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(ctx, c,
		realsearch.WithValidationThreshold(c.Float64("threshold")))
	if err != nil {
		return err
	}
	defer engine.Close(ctx)

	evidence, err := engine.RouteAndSearch(ctx, query, c.Int("limit"))
	if err != nil && !errors.Is(err, core.ErrNoEvidenceFound) {
		return err
	}

	outcome := engine.Validate(c.String("answer"), evidence)

	fmt.Printf("Passed: %v\n", outcome.Passed)
	fmt.Printf("Confidence: %0.3f\n", outcome.Confidence)
	for _, issue := range outcome.Issues {
		fmt.Printf("  [%s] severity=%d span=%q\n", issue.Kind, issue.Severity, issue.Span)
	}
	if err := outcome.Err(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	index := badger.NewVectorIndexWithBackend(backend)
	store, ok := index.(reembed.ChunkStore)
	if !ok {
		return fmt.Errorf("vector index does not support corpus iteration")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxAttempts:    c.Int("max-attempts"),
		RetryDelay:     c.Duration("retry-delay"),
		OnlyMissing:    c.Bool("only-missing"),
	}

	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxAttempts <= 0 {
		return fmt.Errorf("max-attempts must be greater than 0")
	}

	reembedder, err := reembed.NewReembedder(store, embedder, config, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("re-embedding failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
