// Command inspect-store dumps what the embedding store currently holds:
// chapters, record counts, and one sample record per chapter.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"revise/pkg/config"
	"revise/pkg/store"
)

func main() {
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("config error: database.url is required (set DATABASE_URL)")
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	vectorStore, err := store.NewWithConfig(ctx, store.VectorStoreConfig{
		ConnString: cfg.Database.URL,
		TableName:  cfg.Database.TableName,
		VectorDim:  cfg.Database.VectorDim,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to vector store: %v", err)
	}
	defer vectorStore.Close()

	chapters, err := vectorStore.Chapters(ctx)
	if err != nil {
		return err
	}
	if len(chapters) == 0 {
		color.Yellow("No records found in %q", cfg.Database.TableName)
		return nil
	}

	color.Cyan("Chapters in %q:", cfg.Database.TableName)
	for _, chapter := range chapters {
		count, err := vectorStore.Count(ctx, chapter)
		if err != nil {
			return err
		}
		fmt.Printf("  %s: %d records\n", chapter, count)

		rec, err := vectorStore.Sample(ctx, chapter)
		if err != nil {
			return err
		}
		fmt.Printf("  sample: chunk_index=%d dim=%d\n", rec.ChunkIndex, len(rec.Embedding))
		text := rec.Text
		if len(text) > 120 {
			text = text[:120] + "..."
		}
		fmt.Printf("  text: %s\n\n", text)
	}

	return nil
}
