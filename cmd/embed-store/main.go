// Command embed-store is the offline population path: it chunks a chapter
// text file, embeds every chunk, and stores the records in Postgres with
// pgvector. Interactive retrieval does not depend on it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"revise/internal/models"
	"revise/pkg/chunker"
	"revise/pkg/config"
	"revise/pkg/llm"
	"revise/pkg/store"
)

func main() {
	_ = godotenv.Load()

	var configPath string
	var sourceFile string
	var chapter string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&sourceFile, "source", "", "Chapter text file (overrides config)")
	flag.StringVar(&chapter, "chapter", "", "Chapter name for stored records (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if sourceFile != "" {
		cfg.Retriever.SourceFile = sourceFile
	}
	if chapter != "" {
		cfg.Session.Chapter = chapter
	}
	if cfg.Database.URL == "" {
		log.Fatal("config error: database.url is required (set DATABASE_URL)")
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "config error: %v\n", e)
		}
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	data, err := os.ReadFile(cfg.Retriever.SourceFile)
	if err != nil {
		return fmt.Errorf("source text not found: %w", err)
	}

	ch, err := chunker.NewWithConfig(chunker.ChunkerConfig{
		ChunkSize: cfg.Retriever.ChunkSize,
		Overlap:   cfg.Retriever.ChunkOverlap,
	})
	if err != nil {
		return err
	}
	chunks := ch.Chunks(string(data), cfg.Retriever.SourceFile)
	color.Green("✓ Created %d chunks\n", len(chunks))

	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:   cfg.LLM.EmbeddingModel,
		BaseURL: cfg.LLM.BaseURL,
	})
	if err != nil {
		return err
	}

	vectorStore, err := store.NewWithConfig(ctx, store.VectorStoreConfig{
		ConnString: cfg.Database.URL,
		TableName:  cfg.Database.TableName,
		VectorDim:  cfg.Database.VectorDim,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %v", err)
	}
	defer vectorStore.Close()

	bar := progressbar.NewOptions(len(chunks),
		progressbar.OptionSetDescription(color.BlueString(" Embedding chunks...")),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)

	limiter := rate.NewLimiter(rate.Limit(cfg.Retriever.RateLimit), 1)
	embeddings := make([]models.Embedding, len(chunks))
	missing := 0
	for i, c := range chunks {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		embeddings[i] = embedder.Embed(ctx, c.Text)
		if embeddings[i] == nil {
			missing++
			log.Printf("skipping chunk %d: no embedding", c.Index)
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Println()

	inserted, err := vectorStore.Store(ctx, cfg.Session.Chapter, chunks, embeddings)
	if err != nil {
		return fmt.Errorf("failed to store chunks: %v", err)
	}

	color.Green("✓ Stored %d of %d chunks for %q", inserted, len(chunks), cfg.Session.Chapter)
	if missing > 0 {
		color.Yellow("  %d chunks had no embedding and were skipped", missing)
	}
	return nil
}
