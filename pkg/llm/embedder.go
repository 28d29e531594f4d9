package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/tmc/langchaingo/llms/ollama"

	"revise/internal/models"
)

// EmbedderConfig represents the configuration for the embedding client.
type EmbedderConfig struct {
	Model   string
	BaseURL string // Ollama server URL
	Logger  *log.Logger
}

// Embedder wraps the hosted embedding service. Every failure mode of the
// service (transport, auth, malformed response) is treated uniformly: the
// failure is logged and the embedding is reported absent. Callers never see
// an error.
type Embedder struct {
	config EmbedderConfig
	llm    *ollama.LLM
}

func NewEmbedderWithConfig(config EmbedderConfig) (*Embedder, error) {
	if config.Model == "" {
		config.Model = "nomic-embed-text:latest"
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434"
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	emb, err := ollama.New(ollama.WithModel(config.Model),
		ollama.WithServerURL(config.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedding client: %w", err)
	}

	return &Embedder{
		config: config,
		llm:    emb,
	}, nil
}

// Embed issues one embedding call for text. Returns nil when the call fails
// for any reason.
func (e *Embedder) Embed(ctx context.Context, text string) models.Embedding {
	embeddings, err := e.llm.CreateEmbedding(ctx, []string{text})
	if err != nil {
		e.config.Logger.Printf("embedding failed: %v", err)
		return nil
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		e.config.Logger.Printf("embedding service returned no vector")
		return nil
	}
	return embeddings[0]
}
